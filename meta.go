package sberreport

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/etnz/sberreport/date"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AccountKind tells a plain brokerage account from an individual investment
// account (IIS), which carries the contribution-limit table.
type AccountKind int

const (
	BrokerAccount AccountKind = iota
	IISAccount
)

func (k AccountKind) String() string {
	switch k {
	case BrokerAccount:
		return "broker"
	case IISAccount:
		return "iis"
	default:
		return "unknown"
	}
}

func (k AccountKind) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", k.String())), nil
}

// ReportMeta is the statement header: who, which contract, which period.
type ReportMeta struct {
	AccountID      string
	Kind           AccountKind
	PeriodStart    date.Date
	PeriodEnd      date.Date
	GeneratedAt    date.Date
	InvestorName   string
	ContractNumber string
}

// Period returns the statement period as a range.
func (m ReportMeta) Period() date.Range {
	return date.NewRange(m.PeriodStart, m.PeriodEnd)
}

func (m ReportMeta) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("accountId", m.AccountID)
	w.Append("accountKind", m.Kind)
	w.Append("periodStart", m.PeriodStart)
	w.Append("periodEnd", m.PeriodEnd)
	w.Append("generatedAt", m.GeneratedAt)
	w.Append("investorName", m.InvestorName)
	w.Append("contractNumber", m.ContractNumber)
	return w.MarshalJSON()
}

// The header wording has been stable for years, down to the comma before
// "дата создания".
var (
	periodRe   = regexp.MustCompile(`за период с\s+(\d{2}\.\d{2}\.\d{4})\s+по\s+(\d{2}\.\d{2}\.\d{4}),\s*дата создания\s+(\d{2}\.\d{2}\.\d{4})`)
	investorRe = regexp.MustCompile(`Инвестор:\s*([^\n<]+)`)
	contractRe = regexp.MustCompile(`Договор[^A-Za-z0-9]*([A-Za-z0-9]+)`)
)

// investor names come in as "ИВАНОВ ИВАН ИВАНОВИЧ" or "петр петров"
var nameCaser = cases.Title(language.Russian)

// parseMeta extracts the statement header. The period lives in the first
// heading that matches the period wording, the investor and contract in the
// first paragraph that mentions the investor.
func parseMeta(r *RawReport) (ReportMeta, error) {
	var meta ReportMeta

	heading := ""
	firstHeading := ""
	r.doc.Find("h1, h2, h3").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		text := normalizeSpace(h.Text())
		if firstHeading == "" {
			firstHeading = text
		}
		if periodRe.MatchString(text) {
			heading = text
			return false
		}
		return true
	})
	if heading == "" {
		return meta, &MetaNotFoundError{Field: "period", Text: firstHeading}
	}

	caps := periodRe.FindStringSubmatch(heading)
	var err error
	if meta.PeriodStart, err = DecodeDate(caps[1]); err != nil {
		return meta, err
	}
	if meta.PeriodEnd, err = DecodeDate(caps[2]); err != nil {
		return meta, err
	}
	if meta.GeneratedAt, err = DecodeDate(caps[3]); err != nil {
		return meta, err
	}

	// The investor block is matched against the raw text: the name line ends
	// at the newline, and normalizing first would glue the contract line onto
	// the name.
	investorText := ""
	r.doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := p.Text()
		if strings.Contains(strings.ToLower(text), "инвестор") {
			investorText = text
			return false
		}
		return true
	})
	if investorText == "" {
		return meta, &MetaNotFoundError{Field: "investor"}
	}

	name := captureText(investorText, investorRe)
	if name == "" {
		return meta, &MetaNotFoundError{Field: "investor", Text: normalizeSpace(investorText)}
	}
	meta.InvestorName = nameCaser.String(normalizeSpace(name))

	contract := captureText(investorText, contractRe)
	if contract == "" {
		return meta, &MetaNotFoundError{Field: "contract", Text: normalizeSpace(investorText)}
	}
	meta.ContractNumber = strings.TrimSpace(contract)
	// the statement has no separate account number, the contract is the account
	meta.AccountID = meta.ContractNumber

	lower := strings.ToLower(investorText)
	if strings.Contains(lower, "индивидуального инвестиционного счета") || strings.Contains(lower, "иис") {
		meta.Kind = IISAccount
	}

	return meta, nil
}

// captureText returns the first capture group of the pattern, or "".
func captureText(text string, pattern *regexp.Regexp) string {
	caps := pattern.FindStringSubmatch(text)
	if caps == nil {
		return ""
	}
	return caps[1]
}
