package plan

const (
	// FullScheduleThresholdDays is the remaining-days count from which every reminder keeps its
	// canonical offset. Below it offsets are compressed proportionally.
	FullScheduleThresholdDays = 100
)
