// Package dnsname provides the pure name-manipulation primitives the batch
// pipeline needs to go from a user-supplied FQDN or IP literal to zone and
// record-set candidate names: apex/parent splitting, relativization, and
// the IPv4 classful / IPv6 nibble reverse-zone math described in RFC 1035
// and RFC 2317.
//
// Everything here is a pure function of its arguments — no I/O, no shared
// state — so it can be exercised directly by the zone-discovery algorithms
// in internal/zonediscovery without a fake repository in sight.
package dnsname

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/miekg/dns"
)

// Fqdn canonicalizes name to its dot-terminated form.
func Fqdn(name string) string {
	return dns.Fqdn(strings.TrimSpace(name))
}

// IsValidFQDN reports whether name is a syntactically valid domain name:
// dns.IsDomainName must accept it, and it may hold only ASCII letters,
// digits, '-', '_', '*', '/' and the '.' label separators.
func IsValidFQDN(name string) bool {
	name = strings.TrimSpace(name)
	if _, ok := dns.IsDomainName(name); !ok {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '*', r == '/', r == '.':
		default:
			return false
		}
	}
	return true
}

// GetZoneFromNonApexFqdn drops the leftmost label of fqdn and returns the
// parent zone candidate. It returns "" if fqdn has no parent (a single
// label, i.e. already at the root).
func GetZoneFromNonApexFqdn(fqdn string) string {
	fqdn = Fqdn(fqdn)
	idx := strings.IndexByte(fqdn, '.')
	if idx < 0 || idx == len(fqdn)-1 {
		return ""
	}
	return fqdn[idx+1:]
}

// Relativize returns the portion of fqdn with the trailing zoneName removed.
// If fqdn equals zoneName (the apex), it returns "" — the empty relative
// name is used consistently here in place of the "@" apex marker.
//
// Relativize does not check that fqdn is actually contained in zoneName;
// callers resolve containment during zone discovery and only relativize
// names they already know belong to the zone.
func Relativize(fqdn, zoneName string) string {
	fqdn = Fqdn(fqdn)
	zoneName = Fqdn(zoneName)
	if strings.EqualFold(fqdn, zoneName) {
		return ""
	}
	lowerFqdn := strings.ToLower(fqdn)
	lowerZone := strings.ToLower(zoneName)
	if strings.HasSuffix(lowerFqdn, "."+lowerZone) {
		return fqdn[:len(fqdn)-len(zoneName)-1]
	}
	return fqdn
}

// Derelativize re-appends zoneName to a relative name, recovering the FQDN.
// Derelativize("", zoneName) returns zoneName (the apex).
func Derelativize(relativeName, zoneName string) string {
	zoneName = Fqdn(zoneName)
	if relativeName == "" {
		return zoneName
	}
	return Fqdn(strings.TrimSuffix(relativeName, ".") + "." + strings.TrimSuffix(zoneName, "."))
}

// ValidateIPv4Address reports whether s is a syntactically valid IPv4
// literal.
func ValidateIPv4Address(s string) bool {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	return err == nil && addr.Is4()
}

// ValidateIPv6Address reports whether s is a syntactically valid IPv6
// literal (and not an IPv4-mapped address written in IPv6 form).
func ValidateIPv6Address(s string) bool {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	return err == nil && addr.Is6() && !addr.Is4In6()
}

// GetIPv4NonDelegatedZoneName returns the classful /24 in-addr.arpa zone
// name for ip, e.g. "1.2.3.4" -> "3.2.1.in-addr.arpa.". This is used as a
// filter prefix against zone storage: classless (RFC 2317) delegations
// embed this same classful name with a "<lo>/<prefix>." label prepended,
// so an exact-name lookup cannot find them — only a substring match can.
func GetIPv4NonDelegatedZoneName(ip string) (string, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil || !addr.Is4() {
		return "", fmt.Errorf("dnsname: %q is not a valid IPv4 address", ip)
	}
	b := addr.As4()
	return fmt.Sprintf("%d.%d.%d.in-addr.arpa.", b[2], b[1], b[0]), nil
}

// GetIPv4PtrRecordName returns the relative record name (last octet) of ip
// within its classful or classless /24 reverse zone.
func GetIPv4PtrRecordName(ip string) (string, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil || !addr.Is4() {
		return "", fmt.Errorf("dnsname: %q is not a valid IPv4 address", ip)
	}
	b := addr.As4()
	return strconv.Itoa(int(b[3])), nil
}

// GetIPv6FullReverseName returns the canonical, fully nibble-reversed
// ip6.arpa. name for ip (the /128 PTR name).
func GetIPv6FullReverseName(ip string) (string, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil || !addr.Is6() || addr.Is4In6() {
		return "", fmt.Errorf("dnsname: %q is not a valid IPv6 address", ip)
	}
	name, err := dns.ReverseAddr(addr.String())
	if err != nil {
		return "", fmt.Errorf("dnsname: reverse name for %q: %w", ip, err)
	}
	return name, nil
}

// IPv6ReverseCandidateSuffixes returns the set of reverse-zone name
// candidates for ip at every delegation boundary from /20 to /64
// inclusive, per RFC 1035's nibble-format ip6.arpa convention. Each
// candidate is a suffix of the full reverse name obtained by dropping
// (128-cidr)/4 leading nibble labels. The result is deduplicated — several
// adjacent CIDR lengths round to the same nibble boundary — and therefore
// bounded at (64-20)/4+1 = 12 distinct suffixes, well under the 45-entry
// bound from one-suffix-per-cidr.
func IPv6ReverseCandidateSuffixes(ip string) ([]string, error) {
	full, err := GetIPv6FullReverseName(ip)
	if err != nil {
		return nil, err
	}
	labels := strings.Split(strings.TrimSuffix(full, "."), ".")

	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for cidr := 20; cidr <= 64; cidr++ {
		dropNibbles := (128 - cidr) / 4
		if dropNibbles < 0 || dropNibbles >= len(labels) {
			continue
		}
		suffix := strings.Join(labels[dropNibbles:], ".") + "."
		if !seen[suffix] {
			seen[suffix] = true
			out = append(out, suffix)
		}
	}
	return out, nil
}

// PtrIsInZone reports whether ip is covered by the IPv4 reverse zone
// zoneName, honoring RFC 2317 classless delegations of the form
// "<lo>/<prefix>.<classful-name>", where prefix is the delegated
// network's CIDR length (24 to 32), e.g. "0/25" covers hosts 0-127. A
// classful zone name (no "/" label) covers every host in its /24
// unconditionally.
func PtrIsInZone(ip, zoneName string) (bool, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil || !addr.Is4() {
		return false, fmt.Errorf("dnsname: %q is not a valid IPv4 address", ip)
	}
	b := addr.As4()

	zoneName = Fqdn(zoneName)
	labels := strings.Split(strings.TrimSuffix(zoneName, "."), ".")
	if len(labels) == 0 {
		return false, nil
	}
	first := labels[0]
	if !strings.Contains(first, "/") {
		return true, nil
	}

	parts := strings.SplitN(first, "/", 2)
	if len(parts) != 2 {
		return false, fmt.Errorf("dnsname: invalid classless delegation label %q", first)
	}
	lo, errLo := strconv.Atoi(parts[0])
	prefix, errPrefix := strconv.Atoi(parts[1])
	if errLo != nil || errPrefix != nil || prefix < 24 || prefix > 32 || lo < 0 || lo > 255 {
		return false, fmt.Errorf("dnsname: invalid classless delegation label %q", first)
	}

	size := 1 << (32 - prefix)
	hi := lo + size - 1
	octet := int(b[3])
	return octet >= lo && octet <= hi, nil
}

// IsClasslessZoneName reports whether name carries an RFC 2317 "<lo>/<prefix>"
// delegation label.
func IsClasslessZoneName(name string) bool {
	labels := strings.SplitN(strings.TrimSuffix(Fqdn(name), "."), ".", 2)
	return len(labels) > 0 && strings.Contains(labels[0], "/")
}
