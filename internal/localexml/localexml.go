// Package localexml decodes CSL <locale> XML documents into
// internal/csl.LocaleDocument values for internal/locale.Store. No XML
// library appears anywhere in the retrieval pack, so this is built on
// encoding/xml rather than a third-party dependency (see DESIGN.md).
package localexml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/citeproc-go/citeproc/internal/csl"
)

type xmlLocale struct {
	XMLName xml.Name    `xml:"locale"`
	Lang    string      `xml:"http://www.w3.org/XML/1998/namespace lang,attr"`
	Style   xmlStyleOpt `xml:"style-options"`
	Terms   []xmlTerm   `xml:"terms>term"`
	Dates   []xmlDate   `xml:"date"`
}

type xmlStyleOpt struct {
	PunctuationInQuote    string `xml:"punctuation-in-quote,attr"`
	LimitDayOrdinalsToDay1 string `xml:"limit-day-ordinals-to-day-1,attr"`
}

type xmlTerm struct {
	Name       string `xml:"name,attr"`
	Form       string `xml:"form,attr"`
	Gender     string `xml:"gender,attr"`
	GenderForm string `xml:"gender-form,attr"`

	Single   *string `xml:"single"`
	Multiple *string `xml:"multiple"`
	Value    string  `xml:",chardata"`
}

type xmlDate struct {
	Form  string         `xml:"form,attr"`
	Parts []xmlDatePart  `xml:"date-part"`
}

type xmlDatePart struct {
	Name string `xml:"name,attr"`
	Form string `xml:"form,attr"`
}

// Decode reads one <locale> document from r.
func Decode(r io.Reader) (*csl.LocaleDocument, error) {
	var x xmlLocale
	if err := xml.NewDecoder(r).Decode(&x); err != nil {
		return nil, fmt.Errorf("localexml: decode locale: %w", err)
	}

	tag := csl.ParseLanguageTag(x.Lang)
	doc := csl.NewLocaleDocument(tag)

	if x.Style.PunctuationInQuote != "" {
		v, err := strconv.ParseBool(x.Style.PunctuationInQuote)
		if err != nil {
			return nil, fmt.Errorf("localexml: punctuation-in-quote: %w", err)
		}
		doc.Options.PunctuationInQuote = v
		doc.OptionsDeclared.PunctuationInQuote = true
	}
	if x.Style.LimitDayOrdinalsToDay1 != "" {
		v, err := strconv.ParseBool(x.Style.LimitDayOrdinalsToDay1)
		if err != nil {
			return nil, fmt.Errorf("localexml: limit-day-ordinals-to-day-1: %w", err)
		}
		doc.Options.LimitDayOrdinalsToDay1 = v
		doc.OptionsDeclared.LimitDayOrdinalsToDay1 = true
	}

	for _, t := range x.Terms {
		gender := csl.Gender(t.Gender)
		if gender == "neutral" {
			gender = csl.GenderNone
		}
		key := csl.TermKey{
			Name:   t.Name,
			Form:   formOrLong(t.Form),
			Gender: gender,
		}
		doc.Terms[key] = termValueOf(t)
	}

	for _, d := range x.Dates {
		parts := make([]csl.DateFormatPart, 0, len(d.Parts))
		for _, p := range d.Parts {
			parts = append(parts, csl.DateFormatPart{Name: p.Name, Form: formOrLong(p.Form)})
		}
		doc.DateFormats[d.Form] = csl.DateFormat{Form: d.Form, Parts: parts}
	}

	return doc, nil
}

func formOrLong(f string) csl.Form {
	if f == "" {
		return csl.Long
	}
	return csl.Form(f)
}

func termValueOf(t xmlTerm) csl.TermValue {
	if t.Single != nil || t.Multiple != nil {
		tv := csl.TermValue{HasMultiple: true}
		if t.Single != nil {
			tv.Single = strings.TrimSpace(*t.Single)
		}
		if t.Multiple != nil {
			tv.Multiple = strings.TrimSpace(*t.Multiple)
		}
		return tv
	}
	return csl.TermValue{Single: strings.TrimSpace(t.Value)}
}
