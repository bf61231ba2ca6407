package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/domain"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/logger"
)

// Ensure CrawlerPlugin implements the interface.
var _ driving.CrawlerPlugin = (*CrawlerPlugin)(nil)

// CrawlerPlugin runs the document update pipeline on behalf of the host.
// After Init it holds no mutable state, so UpdateDocument may be called
// concurrently for distinct documents.
type CrawlerPlugin struct {
	pipeline    driven.StagePipeline
	crawlerName string
	log         logger.Scoped
}

// NewCrawlerPlugin creates a plugin running the given pipeline.
func NewCrawlerPlugin(pipeline driven.StagePipeline) *CrawlerPlugin {
	return &CrawlerPlugin{pipeline: pipeline}
}

// Init captures the crawler name. It is only used in log messages.
func (p *CrawlerPlugin) Init(cfg domain.PluginConfiguration) error {
	p.crawlerName = cfg.CrawlerName()
	p.log = logger.Named(p.crawlerName)
	p.log.Info("Crawler plugin initialised")
	return nil
}

// CrawlerName returns the name captured by Init.
func (p *CrawlerPlugin) CrawlerName() string {
	return p.crawlerName
}

// UpdateDocument applies the pipeline to doc in place. Every failure is
// returned as a *domain.UpdateError carrying the document's crawl URL.
func (p *CrawlerPlugin) UpdateDocument(ctx context.Context, doc *domain.Document) error {
	if doc == nil {
		return domain.NewUpdateError("", domain.ErrInvalidInput)
	}
	p.log.Debug("Updating %s", doc.CrawlURL)

	if err := p.pipeline.Process(ctx, doc); err != nil {
		p.log.Error("Update of %s failed: %v", doc.CrawlURL, err)
		var updateErr *domain.UpdateError
		if errors.As(err, &updateErr) {
			return updateErr
		}
		return domain.NewUpdateError(doc.CrawlURL, err)
	}

	if doc.Exclude {
		p.log.Info("Excluded %s", doc.CrawlURL)
	}
	return nil
}

// Term releases nothing; the plugin holds no resources between documents.
func (p *CrawlerPlugin) Term() error {
	p.log.Info("Crawler plugin terminated")
	return nil
}
