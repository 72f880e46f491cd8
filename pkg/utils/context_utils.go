package utils

import (
	"fmt"
	"net"
	"strings"

	"github.com/NeuralTrust/SnippetGate/pkg/common"
	"github.com/avct/uasurfer"
)

type UserAgentInfo struct {
	Device  string `json:"device"`
	OS      string `json:"os"`
	Browser string `json:"browser"`
	Locale  string `json:"locale"`
}

// Identity is who a request is rate limited as.
type Identity struct {
	Key           string
	Authenticated bool
}

// IdentityResolver decides which peers may assert identity through headers.
// X-User-ID and the forwarding headers are client controlled: unless an
// upstream proxy strips or overwrites them, a caller can pick any key. With
// trusted proxies configured, requests from other peers are keyed by their
// socket address only. With none configured every peer is trusted, which is
// only safe behind a proxy that rewrites those headers.
type IdentityResolver struct {
	trusted []*net.IPNet
}

// NewIdentityResolver accepts CIDRs or bare addresses.
func NewIdentityResolver(trustedProxies []string) (*IdentityResolver, error) {
	r := &IdentityResolver{}
	for _, entry := range trustedProxies {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !strings.Contains(entry, "/") {
			ip := net.ParseIP(entry)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", entry)
			}
			bits := 8 * net.IPv6len
			if ip.To4() != nil {
				ip, bits = ip.To4(), 8*net.IPv4len
			}
			r.trusted = append(r.trusted, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, network, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
		}
		r.trusted = append(r.trusted, network)
	}
	return r, nil
}

// TrustsAll reports whether no proxy list was configured.
func (r *IdentityResolver) TrustsAll() bool {
	return r == nil || len(r.trusted) == 0
}

func (r *IdentityResolver) trusts(peer string) bool {
	if r.TrustsAll() {
		return true
	}
	ip := net.ParseIP(peer)
	if ip == nil {
		return false
	}
	for _, network := range r.trusted {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// Resolve applies ResolveIdentity to requests from trusted peers and keys
// everyone else by socket address.
func (r *IdentityResolver) Resolve(header func(string) string, remoteAddr string) Identity {
	if r.trusts(socketHost(remoteAddr)) {
		return ResolveIdentity(header, remoteAddr)
	}
	return Identity{Key: common.IPKeyPrefix + socketHost(remoteAddr)}
}

// ResolveIdentity keys authenticated callers by user id and everyone else by
// client IP. header looks up a request header by name. Headers are taken as
// sent; see IdentityResolver.
func ResolveIdentity(header func(string) string, remoteAddr string) Identity {
	if userID := strings.TrimSpace(header(common.UserIDHeader)); userID != "" {
		return Identity{Key: common.UserKeyPrefix + userID, Authenticated: true}
	}
	return Identity{Key: common.IPKeyPrefix + ClientIP(header, remoteAddr)}
}

// ClientIP returns the first usable address from the proxy headers, or the
// socket address without its port.
func ClientIP(header func(string) string, remoteAddr string) string {
	for _, name := range common.ClientIPHeaders {
		value := header(name)
		if value == "" {
			continue
		}
		first, _, _ := strings.Cut(value, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return socketHost(remoteAddr)
}

func socketHost(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	if remoteAddr == "" {
		return "unknown"
	}
	return remoteAddr
}

func ParseUserAgent(uaString string, acceptLanguage string) *UserAgentInfo {
	if uaString == "" {
		return nil
	}
	ua := uasurfer.Parse(uaString)

	var device string
	switch ua.DeviceType {
	case uasurfer.DeviceComputer:
		device = "Computer"
	case uasurfer.DeviceTablet:
		device = "Tablet"
	case uasurfer.DevicePhone:
		device = "Phone"
	case uasurfer.DeviceConsole:
		device = "Console"
	case uasurfer.DeviceWearable:
		device = "Wearable"
	case uasurfer.DeviceTV:
		device = "TV"
	default:
		return nil
	}

	locale, _, _ := strings.Cut(acceptLanguage, ",")
	locale, _, _ = strings.Cut(locale, ";")

	return &UserAgentInfo{
		Device:  device,
		OS:      fmt.Sprintf("%s %d.%d", ua.OS.Name.String(), ua.OS.Version.Major, ua.OS.Version.Minor),
		Browser: fmt.Sprintf("%s %d.%d", ua.Browser.Name.String(), ua.Browser.Version.Major, ua.Browser.Version.Minor),
		Locale:  strings.TrimSpace(locale),
	}
}
