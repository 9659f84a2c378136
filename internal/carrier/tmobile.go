package carrier

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"billsplit/internal/bill"
)

func init() {
	Register(NewTMobile(nil), "tmobile", "t-mobile")
}

// Summary-section anchors. All per-line figures live between these two
// markers on a Simple Choice family plan bill.
const (
	tmoSummaryStart = "THIS BILL SUMMARY"
	tmoSummaryEnd   = "DETAILED CHARGES"
)

var (
	tmoDateRe  = regexp.MustCompile(`Bill issue date\s+([A-Za-z]+ \d{1,2}, \d{4})`)
	tmoTotalRe = regexp.MustCompile(`TOTAL DUE\s+\$(\d+\.\d+)`)

	// Column header row inside the summary section. The optional capture
	// tells the two summary layouts apart.
	tmoHeaderRe = regexp.MustCompile(`Line Type\s+Plans\s+Equipment\s+Services(\s+One-time charges)?\s+Total`)

	// Per-line rows: Phone | Type | Plans | Equipment | Services |
	// [One-time charges] | Total. Kept as two explicit shapes rather than
	// one permissive pattern so a failed match points at the right layout.
	tmoLineWideRe = regexp.MustCompile(
		`\((\d{3})\)\s+(\d{3}-\d{4})\s+Voice\s+\$(\d+\.\d+)\s+(?:\$\d+\.\d+|-+)\s+(?:\$(\d+\.\d+)|-+)\s+(?:\$(\d+\.\d+)|-+)\s+\$(\d+\.\d+)`)
	tmoLineNarrowRe = regexp.MustCompile(
		`\((\d{3})\)\s+(\d{3}-\d{4})\s+Voice\s+\$(\d+\.\d+)\s+(?:\$\d+\.\d+|-+)\s+(?:\$(\d+\.\d+)|-+)\s+\$(\d+\.\d+)`)

	// Account-level row, same two shapes. Equipment/services placeholders
	// are dashes or amounts we do not attribute to any line.
	tmoAccountWideRe = regexp.MustCompile(
		`Account\s+\$(\d+\.\d+)\s+(?:\$\d+\.\d+|-+)\s+(?:\$\d+\.\d+|-+)\s+(?:\$\d+\.\d+|-+)\s+\$(\d+\.\d+)`)
	tmoAccountNarrowRe = regexp.MustCompile(
		`Account\s+\$(\d+\.\d+)\s+(?:\$\d+\.\d+|-+)\s+(?:\$\d+\.\d+|-+)\s+\$(\d+\.\d+)`)
)

// TMobile parses T-Mobile Simple Choice family plan bills. Both observed
// summary layouts are supported: with and without the one-time-charges
// column.
type TMobile struct {
	logger *slog.Logger
}

// NewTMobile returns a T-Mobile bill parser. A nil logger falls back to
// slog.Default.
func NewTMobile(logger *slog.Logger) *TMobile {
	if logger == nil {
		logger = slog.Default()
	}
	return &TMobile{logger: logger}
}

func (p *TMobile) Name() string { return "T-Mobile" }

// Parse scans extracted bill text and returns a validated bill.
func (p *TMobile) Parse(text string) (*bill.Bill, error) {
	b := &bill.Bill{Date: bill.UnknownDate}

	// The date is presentation-only; a miss is tolerated.
	if m := tmoDateRe.FindStringSubmatch(text); m != nil {
		b.Date = m[1]
	} else {
		p.logger.Warn("bill issue date not found, using sentinel", "date", bill.UnknownDate)
	}

	m := tmoTotalRe.FindStringSubmatch(text)
	if m == nil {
		return nil, &ParseError{
			Carrier: p.Name(),
			Anchor:  "TOTAL DUE",
			Message: "total due amount not found",
		}
	}
	b.TotalDue = mustAmount(m[1])

	summary, hasOneTime, err := p.summarySection(text)
	if err != nil {
		return nil, err
	}

	lineRe, accountRe := tmoLineNarrowRe, tmoAccountNarrowRe
	if hasOneTime {
		lineRe, accountRe = tmoLineWideRe, tmoAccountWideRe
	}

	rows := lineRe.FindAllStringSubmatch(summary, -1)
	if len(rows) == 0 {
		// Second shape tried in sequence: some bills carry the wide
		// header but render rows without the extra column (and vice
		// versa) after text extraction.
		if hasOneTime {
			lineRe, accountRe = tmoLineNarrowRe, tmoAccountNarrowRe
		} else {
			lineRe, accountRe = tmoLineWideRe, tmoAccountWideRe
		}
		rows = lineRe.FindAllStringSubmatch(summary, -1)
	}
	if len(rows) == 0 {
		return nil, &ParseError{
			Carrier: p.Name(),
			Anchor:  "per-line charge rows",
			Message: "no phone line rows matched in the bill summary",
		}
	}

	for _, row := range rows {
		b.Lines = append(b.Lines, p.lineItem(row))
	}

	if am := accountRe.FindStringSubmatch(summary); am != nil {
		b.Lines = append(b.Lines, bill.LineItem{
			Key:      bill.AccountKey,
			Plans:    mustAmount(am[1]),
			Services: decimal.Zero,
			Total:    mustAmount(am[len(am)-1]),
		})
	}

	if err := b.Validate(p.logger); err != nil {
		return nil, err
	}
	return b, nil
}

// summarySection returns the text between the summary anchors and whether
// the column header advertises a one-time-charges column.
func (p *TMobile) summarySection(text string) (string, bool, error) {
	start := strings.Index(text, tmoSummaryStart)
	if start < 0 {
		return "", false, &ParseError{
			Carrier: p.Name(),
			Anchor:  tmoSummaryStart,
			Message: "bill summary section not found; is this a Simple Choice family plan bill?",
		}
	}
	rest := text[start+len(tmoSummaryStart):]

	end := strings.Index(rest, tmoSummaryEnd)
	if end < 0 {
		return "", false, &ParseError{
			Carrier: p.Name(),
			Anchor:  tmoSummaryEnd,
			Message: "end of bill summary section not found",
		}
	}
	section := rest[:end]

	loc := tmoHeaderRe.FindStringSubmatchIndex(section)
	if loc == nil {
		return "", false, &ParseError{
			Carrier: p.Name(),
			Anchor:  "Line Type column header",
			Message: "summary column header not found",
		}
	}
	hasOneTime := loc[2] >= 0 // optional one-time capture matched
	return section[loc[1]:], hasOneTime, nil
}

// lineItem converts a matched summary row into a bill line. The wide shape
// carries an extra one-time-charges group that folds into services.
func (p *TMobile) lineItem(row []string) bill.LineItem {
	phone := bill.FormatPhone(row[1], row[2])
	plans := mustAmount(row[3])
	total := mustAmount(row[len(row)-1])

	services := decimal.Zero
	if row[4] != "" {
		services = mustAmount(row[4])
	}
	if len(row) == 7 && row[5] != "" {
		services = services.Add(mustAmount(row[5]))
	}

	return bill.LineItem{Key: phone, Plans: plans, Services: services, Total: total}
}

// mustAmount parses a regex-captured digits-and-dot amount. The pattern
// guarantees the shape, so a failure here is a programming error.
func mustAmount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
