package parameter

// Ruler
const (
	// RulerMinElapsed is the smallest time extent the time ruler spans (same unit as elapsed)
	RulerMinElapsed = 50.0

	// RulerTimeUnit converts elapsed units into the seconds shown on labels
	RulerTimeUnit = 10.0

	// RulerXMinSpacing is the minimum time tick spacing as a fraction of width
	RulerXMinSpacing = 0.07

	// RulerXStep is added to the time divisor when ticks get too dense
	RulerXStep = 4.0

	// RulerYExtent is the fraction of height the multiplier axis spans
	RulerYExtent = 0.8

	// RulerYMinSpacing is the minimum multiplier tick spacing as a fraction of height
	RulerYMinSpacing = 0.08

	// RulerYStep is added to the multiplier divisor when ticks get too dense
	RulerYStep = 1.7

	// RulerYMinPayout is the smallest payout extent the multiplier axis spans
	RulerYMinPayout = 2.0

	// RulerYInsetRatio and RulerYInset place the multiplier axis relative to RuleX
	RulerYInsetRatio = 0.035
	RulerYInset      = 33.0

	// RulerMajorTick and RulerMinorTick are tick mark lengths in logical pixels
	RulerMajorTick = 8.0
	RulerMinorTick = 5.0

	// RulerMaxTicks bounds the labels per axis for degenerate elapsed or payout values
	RulerMaxTicks = 64

	// RulerLineWidth is the tick mark stroke width
	RulerLineWidth = 2.0

	// RulerLabelGap separates multiplier labels from their tick marks
	RulerLabelGap = 5.0
)

// Status Readout
const (
	// PayoutFontRatio and LabelFontRatio size the readout text as a fraction of height
	PayoutFontRatio = 0.16
	LabelFontRatio  = 0.04
	RulerFontRatio  = 0.035

	// PayoutTextY and LabelTextY place the readout lines as a fraction of height
	PayoutTextY = 0.23
	LabelTextY  = 0.3

	// CountdownUnit is the countdown rounding step in milliseconds before conversion to seconds
	CountdownUnit = 10

	TextWaiting       = "waiting..."
	TextStarting      = "Starting..."
	TextCurrentPayout = "Current payout"
	TextRoundRefunded = "Refunded"
	TextRoundBlocked  = "Blocked"
)

// Debug Overlay
const (
	OverlayFontRatio = 0.03
	OverlayMargin    = 6.0
)

// Terminal Presentation
const (
	// CellWidth and CellHeight are the logical pixels covered by one terminal cell
	// CellHeight is split between the upper and lower half-block
	CellWidth  = 4
	CellHeight = 8

	// RecordEvery is the default frame stride of headless PNG recording
	RecordEvery = 1
)
