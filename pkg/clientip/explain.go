package clientip

import "net/http"

// HeaderReport describes how a single proxy header was evaluated.
type HeaderReport struct {
	Header    string `json:"header"`
	Raw       string `json:"raw,omitempty"`
	Candidate string `json:"candidate,omitempty"`
	Verdict   string `json:"verdict"`
}

// Report is a diagnostic view of a resolution, meant for troubleshooting header precedence.
type Report struct {
	Headers    []HeaderReport `json:"headers"`
	PeerAddr   string         `json:"peer_addr"`
	PeerIP     string         `json:"peer_ip"`
	ResolvedIP string         `json:"resolved_ip"`
}

// Explain evaluates every configured header and reports the verdict for each.
// ResolvedIP always equals what Resolve returns for the same input.
func (res *Resolver) Explain(h http.Header, peerAddr string) Report {
	rep := Report{
		Headers:    make([]HeaderReport, 0, len(res.headers)),
		PeerAddr:   peerAddr,
		PeerIP:     peerIP(peerAddr),
		ResolvedIP: res.Resolve(h, peerAddr),
	}
	for _, name := range res.headers {
		raw := h.Get(name)
		candidate, v := res.inspect(name, raw)
		rep.Headers = append(rep.Headers, HeaderReport{
			Header:    name,
			Raw:       raw,
			Candidate: candidate,
			Verdict:   string(v),
		})
	}
	return rep
}
