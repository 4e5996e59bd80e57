// Package protocol maps infrared protocol names to dense identifiers and
// parses the numeric literals used by every textual interface.
package protocol

import "strings"

// ID identifies a protocol by its position in the catalogue.
type ID int

// Unknown is returned when a name does not match the catalogue.
const Unknown ID = -1

// Identifiers for the protocols referenced by name in code. The value of
// each constant is its index in catalogue.
const (
	Unused    ID = 0
	RC5       ID = 1
	RC6       ID = 2
	NEC       ID = 3
	Sony      ID = 4
	Panasonic ID = 5
	JVC       ID = 6
	Samsung   ID = 7
	LG        ID = 10
	Sharp     ID = 14
	Denon     ID = 17
	NECLike   ID = 26
	Raw       ID = 30
)

// Default is used when a caller supplies a code without a protocol.
const Default = NEC

// catalogue order is the identifier assignment; never reorder, only append.
var catalogue = [...]string{
	"UNUSED", "RC5", "RC6", "NEC", "SONY", "PANASONIC", "JVC", "SAMSUNG",
	"WHYNTER", "AIWA_RC_T501", "LG", "SANYO", "MITSUBISHI", "DISH", "SHARP",
	"COOLIX", "DAIKIN", "DENON", "KELVINATOR", "SHERWOOD", "MITSUBISHI_AC",
	"RCMM", "SANYO_LC7461", "RC5X", "GREE", "PRONTO", "NEC_LIKE", "ARGO",
	"TROTEC", "NIKAI", "RAW", "GLOBALCACHE", "TOSHIBA_AC", "FUJITSU_AC",
	"MIDEA", "MAGIQUEST", "LASERTAG", "CARRIER_AC", "HAIER_AC", "MITSUBISHI2",
	"HITACHI_AC", "HITACHI_AC1", "HITACHI_AC2", "GICABLE", "HAIER_AC_YRW02",
	"WHIRLPOOL_AC", "SAMSUNG_AC", "LUTRON", "ELECTRA_AC", "PANASONIC_AC",
	"PIONEER", "LG2", "MWM", "DAIKIN2", "VESTEL_AC", "TECO", "SAMSUNG36",
	"TCL112AC", "LEGOPF", "MITSUBISHI_HEAVY_88", "MITSUBISHI_HEAVY_152",
	"DAIKIN216", "SHARP_AC", "GOODWEATHER", "INAX", "DAIKIN160", "NEOCLIMA",
	"DAIKIN176", "DAIKIN128", "AMCOR", "DAIKIN152", "MITSUBISHI136",
	"MITSUBISHI112", "HITACHI_AC424", "SONY_38K", "EPSON", "SYMPHONY",
	"HITACHI_AC3", "DAIKIN64", "AIRWELL", "DELONGHI_AC", "DOSHISHA",
	"MULTIBRACKETS", "CARRIER_AC40", "CARRIER_AC64", "HITACHI_AC344",
	"CORONA_AC", "MIDEA24", "ZEPEAL", "SANYO_AC", "VOLTAS", "METZ",
	"TRANSCOLD", "TECHNIBEL_AC", "MIRAGE", "ELITESCREENS", "PANASONIC_AC32",
	"MILESTAG2", "ECOCLIM", "XMP", "TRUMA", "HAIER_AC176", "TEKNOPOINT",
	"KELON", "TROTEC_3550", "SANYO_AC88", "BOSE", "ARRIS", "RHOSS", "AIRTON",
	"COOLIX48", "HITACHI_AC264", "KELON168", "HITACHI_AC296", "DAIKIN200",
	"HAIER_AC160", "CARRIER_AC128", "TOTO", "CLIMABUTLER", "TCL96AC",
	"BOSCH144", "SANYO_AC152", "DAIKIN312", "GORENJE", "WOWWEE",
	"CARRIER_AC84", "YORK",
}

const unknownName = "UNKNOWN"

// FromName resolves a protocol name, ignoring case. The catalogue is
// scanned in order and the first match wins.
func FromName(name string) ID {
	for i, n := range catalogue {
		if strings.EqualFold(name, n) {
			return ID(i)
		}
	}
	return Unknown
}

// String returns the catalogue name, or UNKNOWN for ids outside it.
func (id ID) String() string {
	if !id.Valid() {
		return unknownName
	}
	return catalogue[id]
}

// Valid reports whether id indexes the catalogue.
func (id ID) Valid() bool {
	return id >= 0 && int(id) < len(catalogue)
}

// Names returns the catalogue in identifier order.
func Names() []string {
	out := make([]string, len(catalogue))
	copy(out, catalogue[:])
	return out
}

// Count is the number of entries in the catalogue.
func Count() int { return len(catalogue) }
