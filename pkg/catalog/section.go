// Package catalog implements the read-only client for the hack catalog's
// public section-list API. It turns a section (a Kaizo difficulty tier or
// the awaiting-moderation queue) into a lazy stream of HackRecords.
package catalog

import (
	"fmt"
	"net/url"
)

// Section identifies one unit of catalog querying: a difficulty tier or the
// awaiting-moderation queue.
type Section string

// Known sections. All but SectionAwaiting carry a difficulty code used in the
// catalog query.
const (
	SectionNewcomer     Section = "newcomer"
	SectionCasual       Section = "casual"
	SectionIntermediate Section = "intermediate"
	SectionAdvanced     Section = "advanced"
	SectionExpert       Section = "expert"
	SectionMaster       Section = "master"
	SectionGrandmaster  Section = "grandmaster"
	SectionAwaiting     Section = "awaiting"
)

// difficultyCodes maps tier sections to the catalog's difficulty filter codes.
var difficultyCodes = map[Section]string{
	SectionNewcomer:     "diff_1",
	SectionCasual:       "diff_2",
	SectionIntermediate: "diff_3",
	SectionAdvanced:     "diff_4",
	SectionExpert:       "diff_5",
	SectionMaster:       "diff_6",
	SectionGrandmaster:  "diff_7",
}

// Tiers returns the seven difficulty-tier sections in ascending order.
// The awaiting-moderation queue is not a tier and is excluded.
func Tiers() []Section {
	return []Section{
		SectionNewcomer,
		SectionCasual,
		SectionIntermediate,
		SectionAdvanced,
		SectionExpert,
		SectionMaster,
		SectionGrandmaster,
	}
}

// All returns every known section, tiers first, awaiting last.
func All() []Section {
	return append(Tiers(), SectionAwaiting)
}

// ParseSection validates s against the known section names.
func ParseSection(s string) (Section, error) {
	sec := Section(s)
	if sec == SectionAwaiting {
		return sec, nil
	}
	if _, ok := difficultyCodes[sec]; ok {
		return sec, nil
	}
	return "", fmt.Errorf("unknown section %q", s)
}

// DifficultyCode returns the catalog difficulty filter code for a tier
// section, or "" for the awaiting-moderation queue.
func (s Section) DifficultyCode() string {
	return difficultyCodes[s]
}

// QueryValues returns the query parameters selecting this section in the
// catalog's section-list endpoint. The awaiting queue is selected with the
// unmoderated flag instead of a difficulty filter.
func (s Section) QueryValues() url.Values {
	v := url.Values{}
	v.Set("a", "getsectionlist")
	v.Set("s", "smwhacks")
	v.Add("f[type][]", "kaizo")
	if s == SectionAwaiting {
		v.Set("u", "1")
	} else {
		v.Add("f[difficulty][]", s.DifficultyCode())
	}
	return v
}

func (s Section) String() string { return string(s) }
