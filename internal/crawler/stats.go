package crawler

import "time"

func (c *crawler) collectStats(duration time.Duration) Stats {
	stats := c.stats
	stats.ExternalLinks = len(c.external)
	stats.PagesWithBroken = len(c.broken)
	if _, ok := c.broken[PageErrorOrigin]; ok {
		// The synthetic bucket is not a page.
		stats.PagesWithBroken--
	}
	stats.Duration = duration
	return stats
}
