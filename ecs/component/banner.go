package component

// Banner is timed text on screen. TimerSystem hides it once Remaining runs
// out, or drops it silently when Owner is gone.
type Banner struct {
	Text      string
	Duration  float64
	Remaining float64
	// Owner is the entity whose landing raised the banner.
	Owner uint64
}

var BannerComponent = NewComponent[Banner]()

// BannerSource is the level's banner template.
type BannerSource struct {
	Text    string
	Seconds float64
}

var BannerSourceComponent = NewComponent[BannerSource]()
