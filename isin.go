package statement

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// isinRegex checks for the basic structure: 2 letters, 9 alphanumeric, 1 digit.
var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// isinScanRe finds ISIN-shaped substrings inside free text.
var isinScanRe = regexp.MustCompile(`\b[A-Z]{2}[A-Z0-9]{9}[0-9]\b`)

// isinCountries is the allow-list of valid ISIN prefixes: the ISO 3166-1
// alpha-2 country codes plus the special prefixes used for international
// securities (XS) and European Union issues (EU).
var isinCountries = map[string]bool{}

func init() {
	codes := "AD AE AF AG AI AL AM AO AQ AR AS AT AU AW AX AZ " +
		"BA BB BD BE BF BG BH BI BJ BL BM BN BO BQ BR BS BT BV BW BY BZ " +
		"CA CC CD CF CG CH CI CK CL CM CN CO CR CU CV CW CX CY CZ " +
		"DE DJ DK DM DO DZ EC EE EG EH ER ES ET FI FJ FK FM FO FR " +
		"GA GB GD GE GF GG GH GI GL GM GN GP GQ GR GS GT GU GW GY " +
		"HK HM HN HR HT HU ID IE IL IM IN IO IQ IR IS IT JE JM JO JP " +
		"KE KG KH KI KM KN KP KR KW KY KZ LA LB LC LI LK LR LS LT LU LV LY " +
		"MA MC MD ME MF MG MH MK ML MM MN MO MP MQ MR MS MT MU MV MW MX MY MZ " +
		"NA NC NE NF NG NI NL NO NP NR NU NZ OM " +
		"PA PE PF PG PH PK PL PM PN PR PS PT PW PY QA RE RO RS RU RW " +
		"SA SB SC SD SE SG SH SI SJ SK SL SM SN SO SR SS ST SV SX SY SZ " +
		"TC TD TF TG TH TJ TK TL TM TN TO TR TT TV TW TZ " +
		"UA UG UM US UY UZ VA VC VE VG VI VN VU WF WS YE YT ZA ZM ZW " +
		"XS EU"
	for _, c := range strings.Fields(codes) {
		isinCountries[c] = true
	}
}

// ISINResult is the verdict of CheckISIN.
type ISINResult struct {
	Valid  bool
	Reason string
}

// CheckISIN validates an ISIN's format, country prefix and check digit.
// It is pure and deterministic; a zero Reason means the ISIN is valid.
func CheckISIN(isin string) ISINResult {
	if len(isin) != 12 {
		return ISINResult{Reason: fmt.Sprintf("Invalid length: must be 12 characters, got %d", len(isin))}
	}
	if !isinRegex.MatchString(isin) {
		return ISINResult{Reason: "Invalid format: must be 2 uppercase letters, 9 alphanumeric chars, and 1 digit"}
	}
	if cc := isin[:2]; !isinCountries[cc] {
		return ISINResult{Reason: fmt.Sprintf("Invalid country code: %s", cc)}
	}

	// Convert letters to two-digit numbers for the check digit calculation.
	var numericStr strings.Builder
	for _, char := range isin[:11] {
		if char >= 'A' && char <= 'Z' {
			numericStr.WriteString(strconv.Itoa(int(char - 'A' + 10)))
		} else {
			numericStr.WriteRune(char)
		}
	}

	// Luhn mod-10: double every second digit from the right.
	sum := 0
	isSecond := true
	digits := numericStr.String()
	for i := len(digits) - 1; i >= 0; i-- {
		digit := int(digits[i] - '0')
		if isSecond {
			digit *= 2
		}
		sum += (digit / 10) + (digit % 10)
		isSecond = !isSecond
	}

	expected := (10 - (sum % 10)) % 10
	actual := int(isin[11] - '0')
	if expected != actual {
		return ISINResult{Reason: fmt.Sprintf("Invalid check digit: expected %d, got %d", expected, actual)}
	}
	return ISINResult{Valid: true}
}

// FindISINs returns the positions of every ISIN-shaped substring in text.
// Shapes are not validated here; CheckISIN decides what they are worth.
func FindISINs(text string) [][]int {
	return isinScanRe.FindAllStringIndex(text, -1)
}
