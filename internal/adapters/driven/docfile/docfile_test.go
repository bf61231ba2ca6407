package docfile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/domain"
)

func TestDecode_InlineText(t *testing.T) {
	input := `{
		"id": "doc-1",
		"crawl_url": "https://example.com/a.txt",
		"fields": {"__$role$__": "Admin ", "__$lastupdateddate$__": 1699999999},
		"content": {"text": "IBM\n", "content_type": "text/plain", "charset": "ISO-8859-1"}
	}`

	doc, err := Decode(strings.NewReader(input), "")
	require.NoError(t, err)

	assert.Equal(t, "doc-1", doc.ID)
	assert.Equal(t, "https://example.com/a.txt", doc.CrawlURL)
	assert.Equal(t, "Admin ", doc.Fields.Get(domain.FieldRole).String())
	assert.Equal(t, domain.KindNumber, doc.Fields.Get(domain.FieldLastUpdatedDate).Kind())
	assert.Equal(t, "1699999999", doc.Fields.Get(domain.FieldLastUpdatedDate).String())

	require.NotNil(t, doc.Content)
	assert.Equal(t, "text/plain", doc.Content.ContentType)
	assert.Equal(t, "ISO-8859-1", doc.Content.Charset)
	body, err := doc.Content.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "IBM\n", string(body))
}

func TestDecode_GeneratesID(t *testing.T) {
	doc, err := Decode(strings.NewReader(`{"crawl_url": "u"}`), "")
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.NotNil(t, doc.Fields)
	assert.Nil(t, doc.Content)
}

func TestDecode_EmptyContent(t *testing.T) {
	doc, err := Decode(strings.NewReader(`{"crawl_url": "u", "content": {"content_type": "text/html"}}`), "")
	require.NoError(t, err)
	require.NotNil(t, doc.Content)
	assert.Equal(t, "text/html", doc.Content.ContentType)

	body, err := doc.Content.Bytes()
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `nope`},
		{"object field value", `{"crawl_url": "u", "fields": {"k": {"a": 1}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), "")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestLoad_ContentPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "body.txt"), []byte("from file"), 0600))
	descPath := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(descPath, []byte(`{"crawl_url": "u", "content": {"path": "body.txt"}}`), 0600))

	doc, err := Load(descPath)
	require.NoError(t, err)

	body, err := doc.Content.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "from file", string(body))
}

func TestLoad_MissingContentFile(t *testing.T) {
	dir := t.TempDir()
	descPath := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(descPath, []byte(`{"crawl_url": "u", "content": {"path": "gone.txt"}}`), 0600))

	doc, err := Load(descPath)
	require.NoError(t, err)

	_, err = doc.Content.Reader()
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	doc := &domain.Document{
		ID:       "doc-1",
		CrawlURL: "https://example.com/confidential",
		Fields:   domain.Fields{domain.FieldRole: domain.StringValue("Admin")},
		Content:  domain.NewContent("text/plain", []byte("hello\n")),
	}
	doc.Content.Charset = "UTF-8"
	doc.Exclude = true
	doc.AddNotice("excluded")

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "doc-1", out["id"])
	assert.Equal(t, true, out["exclude"])
	assert.Equal(t, []any{"excluded"}, out["notice_messages"])
	assert.Equal(t, map[string]any{domain.FieldRole: "Admin"}, out["fields"])
	assert.Equal(t, map[string]any{
		"text":         "hello\n",
		"content_type": "text/plain",
		"charset":      "UTF-8",
	}, out["content"])
}

func TestEncode_NilDocument(t *testing.T) {
	assert.ErrorIs(t, Encode(&bytes.Buffer{}, nil), domain.ErrInvalidInput)
}

func TestEncode_TranscodesToUTF8(t *testing.T) {
	doc := &domain.Document{
		ID:       "doc-1",
		CrawlURL: "u",
		Content:  domain.NewContent("text/plain", []byte("caf\xe9")),
	}
	doc.Content.Charset = "ISO-8859-1"

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))

	var out descriptor
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.NotNil(t, out.Content)
	require.NotNil(t, out.Content.Text)
	assert.Equal(t, "café", *out.Content.Text)
	assert.Equal(t, "UTF-8", out.Content.Charset)
}

func TestEncode_UnknownCharset(t *testing.T) {
	doc := &domain.Document{
		ID:       "doc-1",
		CrawlURL: "u",
		Content:  domain.NewContent("text/plain", []byte("x")),
	}
	doc.Content.Charset = "no-such-charset"

	err := Encode(&bytes.Buffer{}, doc)
	assert.ErrorIs(t, err, domain.ErrUnsupportedCharset)
}

func TestSaveThenLoad_LegacyCharset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	doc := &domain.Document{
		ID:       "doc-1",
		CrawlURL: "u",
		Content:  domain.NewContent("text/plain", []byte("caf\xe9")),
	}
	doc.Content.Charset = "ISO-8859-1"

	require.NoError(t, Save(path, doc))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, loaded.Content)
	body, err := loaded.Content.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "café", string(body))
	assert.Equal(t, "UTF-8", loaded.Content.Charset)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "doc.json")
	doc := &domain.Document{
		ID:       "doc-1",
		CrawlURL: "u",
		Fields:   domain.Fields{domain.FieldDate: domain.StringValue("2023-11-01 10:15")},
	}

	require.NoError(t, Save(path, doc))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, loaded.ID)
	assert.Equal(t, "2023-11-01 10:15", loaded.Fields.Get(domain.FieldDate).String())
	assert.Nil(t, loaded.Content)
}
