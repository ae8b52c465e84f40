package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maheshvali1990/Society-maintenance-tracker/utils"
)

func TestParseIdentifier(t *testing.T) {
	cases := []struct {
		name    string
		caption string
		flat    string
		wing    string
	}{
		{"combined with separator", "Flat A-101", "101", "A"},
		{"labelled flat and wing", "Wing C Flat 203", "203", "C"},
		{"letter plus digits", "D601", "601", "D"},
		{"no identifiers", "no info here", "", ""},
		{"empty caption", "", "", ""},
		{"whitespace only", "   ", "", ""},
		{"flat label only", "Flat 204 paid", "204", ""},
		{"wing label with separator", "wing-B flat no. 17", "17", "B"},
		{"payment for pattern", "payment for 101 A", "101", "A"},
		{"bare token inside sentence", "maintenance done B12 thanks", "12", "B"},
		{"hyphenated flat normalized", "Flat no: 12-3", "123", ""},
		{"lowercase combined", "paid for b-404", "404", "B"},
		{"caption after media marker", "> Flat B-12", "12", "B"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := utils.ParseIdentifier(tc.caption)
			assert.Equal(t, tc.flat, got.FlatNumber)
			assert.Equal(t, tc.wing, got.Wing)
		})
	}
}

func TestParseIdentifierRecoversWingBeforeFlat(t *testing.T) {
	// 门牌号由标签规则找到后，紧挨在号码前面的字母应当被识别为翼楼
	got := utils.ParseIdentifier("receipt flat 302, C-302 second floor")
	assert.Equal(t, "302", got.FlatNumber)
	assert.Equal(t, "C", got.Wing)
}

func TestParseIdentifierDoesNotInventWing(t *testing.T) {
	// 标签词本身的结尾字母不能被误认成翼楼
	got := utils.ParseIdentifier("Flat 204")
	assert.Equal(t, "204", got.FlatNumber)
	assert.Empty(t, got.Wing)
}
