package middleware

import (
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/config"
)

// TrustedNetHandler sets object structure.
type TrustedNetHandler struct {
	Resolved bool
	IP       net.IP
	IPNet    *net.IPNet
}

// NewTrustedNetHandler initializes a new trusted network handler, an empty or invalid subnet denies everyone.
func NewTrustedNetHandler(cfg *config.Config, log *zap.Logger) *TrustedNetHandler {
	ip, ipnet, err := net.ParseCIDR(cfg.TrustedSubnet)
	if err != nil {
		if log != nil {
			log.Info("trusted network was not initialized", zap.Error(err))
		}
		return &TrustedNetHandler{
			Resolved: false,
			IP:       nil,
			IPNet:    nil,
		}
	}
	return &TrustedNetHandler{
		Resolved: true,
		IP:       ip,
		IPNet:    ipnet,
	}
}

// TrustedNetworkHandler provides trusted network handling functionality.
func (tn *TrustedNetHandler) TrustedNetworkHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !tn.Resolved {
			http.Error(w, "Internal subnet access violation", http.StatusForbidden)
			return
		}
		ipStr, _, err := net.SplitHostPort(r.RemoteAddr)
		ipMain := net.ParseIP(ipStr)
		if err != nil || ipMain == nil || !tn.IPNet.Contains(ipMain) {
			ip := forwardedIP(r)
			if ip == nil || !tn.IPNet.Contains(ip) {
				http.Error(w, "Internal subnet access violation", http.StatusForbidden)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// forwardedIP returns the client address reported by a proxy.
func forwardedIP(r *http.Request) net.IP {
	ip := net.ParseIP(r.Header.Get("X-Real-IP"))
	if ip == nil {
		ips := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
		ip = net.ParseIP(strings.TrimSpace(ips[0]))
	}
	return ip
}

// ClientIP returns the best known address of the client.
func ClientIP(r *http.Request) string {
	if ip := forwardedIP(r); ip != nil {
		return ip.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
