package analysis

// Summary reports the counts of a finished analysis.
type Summary struct {
	Consultant       string `json:"consultant"`
	Pages            int    `json:"pages"`
	Section          string `json:"section"`
	Candidates       int    `json:"candidates"`
	Missions         int    `json:"missions"`
	VerifiedMissions int    `json:"verified_missions"`
	TechnicalSkills  int    `json:"technical_skills"`
	FunctionalSkills int    `json:"functional_skills"`
	Warnings         int    `json:"warnings"`
}

// ProgressSink observes an analysis. Implementations used by concurrent analyses
// must be safe for concurrent use.
type ProgressSink interface {
	OnPage(n int)
	OnSectionFound(name string)
	OnStrategyResult(tag string, count int)
	OnWarning(w *ExtractionWarning)
	OnComplete(s Summary)
}

// NopSink ignores every event.
type NopSink struct{}

func (NopSink) OnPage(int) {}
func (NopSink) OnSectionFound(string) {}
func (NopSink) OnStrategyResult(string, int) {}
func (NopSink) OnWarning(*ExtractionWarning) {}
func (NopSink) OnComplete(Summary) {}

// MultiSink fans events out to several sinks in order.
type MultiSink []ProgressSink

func (m MultiSink) OnPage(n int) {
	for _, s := range m {
		s.OnPage(n)
	}
}

func (m MultiSink) OnSectionFound(name string) {
	for _, s := range m {
		s.OnSectionFound(name)
	}
}

func (m MultiSink) OnStrategyResult(tag string, count int) {
	for _, s := range m {
		s.OnStrategyResult(tag, count)
	}
}

func (m MultiSink) OnWarning(w *ExtractionWarning) {
	for _, s := range m {
		s.OnWarning(w)
	}
}

func (m MultiSink) OnComplete(sum Summary) {
	for _, s := range m {
		s.OnComplete(sum)
	}
}
