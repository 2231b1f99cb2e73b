package vector

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	epsgCode     = regexp.MustCompile(`(?i)^(?:EPSG:{1,2}|urn:ogc:def:crs:EPSG:[^:]*:)(\d+)$`)
	wktAuthority = regexp.MustCompile(`(?i)^(?:AUTHORITY\[\s*"EPSG"\s*,\s*"(\d+)"\s*\]|ID\[\s*"EPSG"\s*,\s*(\d+)\s*\])`)
	wktProjName  = regexp.MustCompile(`(?i)^\s*PROJ(?:CS|CRS)\[\s*"([^"]+)"`)
	wktGeogName  = regexp.MustCompile(`(?i)^\s*(?:GEOGCS|GEOGCRS|GEODCRS)\[\s*"([^"]+)"`)
	utmName      = regexp.MustCompile(`(?i)(ETRS[ _]?(?:19)?89|WGS[ _]?(?:19)?84).*UTM[ _]zone[ _](\d{1,2})\s*([NS])`)
)

// ParseCRS maps a CRS definition to an EPSG code. Accepted forms are
// "EPSG:25832", OGC URNs ("urn:ogc:def:crs:EPSG::25832", "…:OGC:1.3:CRS84"),
// and WKT1/WKT2 strings as found in .prj files.
func ParseCRS(def string) (int, error) {
	def = strings.TrimSpace(def)
	if def == "" {
		return 0, &ErrUnknownCRS{Definition: def}
	}

	if m := epsgCode.FindStringSubmatch(def); m != nil {
		return strconv.Atoi(m[1])
	}
	if strings.HasSuffix(strings.ToUpper(def), "CRS84") {
		return 4326, nil
	}

	if code, ok := rootAuthority(def); ok {
		return strconv.Atoi(code)
	}

	// ESRI .prj files and some WKT exports carry no root authority.
	if m := wktProjName.FindStringSubmatch(def); m != nil {
		if u := utmName.FindStringSubmatch(m[1]); u != nil {
			zone, _ := strconv.Atoi(u[2])
			north := strings.EqualFold(u[3], "N")
			etrs := strings.HasPrefix(strings.ToUpper(u[1]), "ETRS")
			switch {
			case etrs && north:
				return 25800 + zone, nil
			case north:
				return 32600 + zone, nil
			default:
				return 32700 + zone, nil
			}
		}
		return 0, &ErrUnknownCRS{Definition: def}
	}

	if m := wktGeogName.FindStringSubmatch(def); m != nil {
		name := strings.ToUpper(m[1])
		switch {
		case strings.Contains(name, "ETRS"):
			return 4258, nil
		case strings.Contains(name, "WGS") && strings.Contains(name, "84"):
			return 4326, nil
		}
	}

	return 0, &ErrUnknownCRS{Definition: def}
}

// rootAuthority returns the EPSG code of the AUTHORITY or ID clause that
// belongs to the root WKT element. Clauses of nested datum, ellipsoid or
// unit elements are ignored.
func rootAuthority(wkt string) (string, bool) {
	depth := 0
	quoted := false
	for i := 0; i < len(wkt); i++ {
		switch c := wkt[i]; {
		case c == '"':
			quoted = !quoted
		case quoted:
		case c == '[' || c == '(':
			depth++
		case c == ']' || c == ')':
			depth--
		case depth == 1 && (c == 'A' || c == 'a' || c == 'I' || c == 'i'):
			if prev := wkt[i-1]; prev != ',' && prev != ' ' && prev != '\t' && prev != '\n' {
				continue
			}
			if m := wktAuthority.FindStringSubmatch(wkt[i:]); m != nil {
				if m[1] != "" {
					return m[1], true
				}
				return m[2], true
			}
		}
	}
	return "", false
}
