package middleware

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ErrInvalidProxy возвращается при некорректном адресе доверенного прокси
var ErrInvalidProxy = errors.New("middleware: invalid trusted proxy")

// TrustedProxies список прокси, заголовкам которых (X-Forwarded-For, X-Real-Ip) можно верить.
// Пустой список или nil: клиентом считается непосредственный пир (RemoteAddr).
type TrustedProxies struct {
	nets []*net.IPNet
}

// ParseTrustedProxies принимает IP адреса и CIDR подсети
func ParseTrustedProxies(entries []string) (*TrustedProxies, error) {
	p := &TrustedProxies{}
	for _, raw := range entries {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}
		if !strings.Contains(entry, "/") {
			ip := net.ParseIP(entry)
			if ip == nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidProxy, raw)
			}
			bits := 32
			if ip.To4() == nil {
				bits = 128
			}
			entry = fmt.Sprintf("%s/%d", ip.String(), bits)
		}
		_, ipNet, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidProxy, raw)
		}
		p.nets = append(p.nets, ipNet)
	}
	return p, nil
}

func (p *TrustedProxies) trusts(addr string) bool {
	if p == nil {
		return false
	}
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, n := range p.nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientIP возвращает адрес клиента. Заголовки учитываются только от доверенного пира;
// X-Forwarded-For читается справа налево до первого недоверенного адреса.
func (p *TrustedProxies) ClientIP(r *http.Request) string {
	peer := peerIP(r)
	if !p.trusts(peer) {
		return peer
	}

	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		hops := strings.Split(fwd, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if net.ParseIP(hop) == nil {
				break
			}
			if !p.trusts(hop) {
				return hop
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-Ip")); net.ParseIP(ip) != nil {
		return ip
	}
	return peer
}

// peerIP адрес непосредственного соединения
func peerIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
