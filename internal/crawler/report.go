package crawler

func (c *crawler) recordBroken(origin string, outcome Outcome) {
	c.broken[origin] = append(c.broken[origin], BrokenLink{
		URL:    outcome.URL,
		Status: outcome.StatusCode,
		Err:    outcome.Err,
	})
	c.stats.BrokenLinks++
}
