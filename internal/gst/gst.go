// Package gst holds shared GST reference data: the state code table and
// GSTIN helpers used by validation and record assembly.
package gst

import (
	"regexp"

	"saralgst/internal/domain"
)

// GSTINPattern matches a well-formed 15-character GSTIN:
// 2-digit state code, 10-character PAN, entity code, the literal Z, checksum.
var GSTINPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// DatePattern matches ISO calendar dates (YYYY-MM-DD) as emitted by extraction.
var DatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// StateNames maps GST state codes to state names. Codes 01-38 are states and
// union territories; 97 is Other Territory.
var StateNames = map[string]string{
	"01": "Jammu and Kashmir",
	"02": "Himachal Pradesh",
	"03": "Punjab",
	"04": "Chandigarh",
	"05": "Uttarakhand",
	"06": "Haryana",
	"07": "Delhi",
	"08": "Rajasthan",
	"09": "Uttar Pradesh",
	"10": "Bihar",
	"11": "Sikkim",
	"12": "Arunachal Pradesh",
	"13": "Nagaland",
	"14": "Manipur",
	"15": "Mizoram",
	"16": "Tripura",
	"17": "Meghalaya",
	"18": "Assam",
	"19": "West Bengal",
	"20": "Jharkhand",
	"21": "Odisha",
	"22": "Chhattisgarh",
	"23": "Madhya Pradesh",
	"24": "Gujarat",
	"25": "Daman and Diu",
	"26": "Dadra and Nagar Haveli",
	"27": "Maharashtra",
	"28": "Andhra Pradesh (old)",
	"29": "Karnataka",
	"30": "Goa",
	"31": "Lakshadweep",
	"32": "Kerala",
	"33": "Tamil Nadu",
	"34": "Puducherry",
	"35": "Andaman and Nicobar Islands",
	"36": "Telangana",
	"37": "Andhra Pradesh",
	"38": "Ladakh",
	"97": "Other Territory",
}

// IsValidGSTIN reports whether s matches the GSTIN shape. It does not verify
// the checksum character.
func IsValidGSTIN(s string) bool {
	return GSTINPattern.MatchString(s)
}

// IsValidStateCode reports whether code is a known GST state code.
func IsValidStateCode(code string) bool {
	_, ok := StateNames[code]
	return ok
}

// StateCodeFromGSTIN returns the two-digit state prefix of a GSTIN, or ""
// when the GSTIN is too short or its prefix is not a known state code.
func StateCodeFromGSTIN(gstin string) string {
	if len(gstin) < 2 {
		return ""
	}
	code := gstin[:2]
	if !IsValidStateCode(code) {
		return ""
	}
	return code
}

// StateName returns the state name for a code, or "" when unknown.
func StateName(code string) string {
	return StateNames[code]
}

// SupplyTypeFor derives intra- vs inter-state supply from the state codes of
// the two transacting parties. Returns "" when either code is unknown.
func SupplyTypeFor(supplierStateCode, recipientStateCode string) domain.SupplyType {
	if supplierStateCode == "" || recipientStateCode == "" {
		return ""
	}
	if supplierStateCode == recipientStateCode {
		return domain.SupplyIntraState
	}
	return domain.SupplyInterState
}
