package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error". Nil errors yield an empty Attr, which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func ClientIP(ip string) slog.Attr {
	return slog.String("client_ip", ip)
}

func ClientType(t string) slog.Attr {
	return slog.String("client_type", t)
}

func Fingerprint(fp string) slog.Attr {
	return slog.String("fingerprint", fp)
}

// APIKey records the key's name, never its secret.
func APIKey(name string) slog.Attr {
	return slog.String("api_key", name)
}

func Addr(addr string) slog.Attr {
	return slog.String("addr", addr)
}

func Status(code int) slog.Attr {
	return slog.Int("status", code)
}
