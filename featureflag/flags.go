package featureflag

type Flag string

const (
	FlagSweepLineDiff           Flag = "SWEEP_LINE_DIFF"
	FlagDisableDrawStream       Flag = "DISABLE_DRAW_STREAM"
	FlagDisableVisibilityState  Flag = "DISABLE_VISIBILITY_STATE"
	FlagDisablePassReports      Flag = "DISABLE_PASS_REPORTS"
	FlagDisableSmokeTestHandler Flag = "DISABLE_SMOKE_TEST_HANDLER"
)
