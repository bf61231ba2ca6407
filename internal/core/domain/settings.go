package domain

// SettingCrawlerName is the general setting naming the crawler.
const SettingCrawlerName = "crawler_name"

// PluginConfiguration is the read-only configuration the host passes to
// the plugin once at initialisation.
type PluginConfiguration struct {
	// GeneralSettings is the flat map of named settings.
	GeneralSettings map[string]any
}

// CrawlerName returns the crawler name setting, or "" if unset or not a string.
func (c PluginConfiguration) CrawlerName() string {
	name, _ := c.GeneralSettings[SettingCrawlerName].(string)
	return name
}
