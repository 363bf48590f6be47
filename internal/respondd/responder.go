package respondd

import (
	"context"
	"fmt"
	"log"
	"net"
	"strings"

	"github.com/k3v1n-eu/unifi-respondd/internal/config"
	"github.com/k3v1n-eu/unifi-respondd/internal/inventory"
	"golang.org/x/net/ipv6"
)

// producer builds the record list for one response kind from a fresh
// inventory snapshot. New kinds plug in here without touching the loop.
type producer func(aps []inventory.AccessPoint) []Record

// Responder owns the UDP socket and answers respondd requests received on
// the multicast group with one unicast datagram per node.
type Responder struct {
	cfg      config.ResponddConfig
	provider inventory.Provider
	kinds    map[string]producer
	conn     *net.UDPConn
	pc       *ipv6.PacketConn
}

func New(cfg config.ResponddConfig, provider inventory.Provider) *Responder {
	return &Responder{
		cfg:      cfg,
		provider: provider,
		kinds: map[string]producer{
			"nodeinfo":   NodeInfos,
			"statistics": Statistics,
		},
	}
}

// Listen binds the socket and joins the multicast group on the configured
// interface. Any failure here is a misconfiguration and fatal to startup.
func (r *Responder) Listen() error {
	group := net.ParseIP(r.cfg.MulticastAddress)
	if group == nil {
		return fmt.Errorf("invalid multicast address %q", r.cfg.MulticastAddress)
	}
	ifi, err := net.InterfaceByName(r.cfg.Interface)
	if err != nil {
		return fmt.Errorf("interface %q: %w", r.cfg.Interface, err)
	}

	conn, err := net.ListenUDP("udp6", &net.UDPAddr{IP: net.IPv6unspecified, Port: r.cfg.MulticastPort})
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", r.cfg.MulticastPort, err)
	}

	pc := ipv6.NewPacketConn(conn)
	if err := pc.JoinGroup(ifi, &net.UDPAddr{IP: group}); err != nil {
		conn.Close()
		return fmt.Errorf("join group %v on %s: %w", group, ifi.Name, err)
	}

	r.conn = conn
	r.pc = pc
	return nil
}

// Serve answers requests until ctx is cancelled. One request is fully
// processed, including the inventory fetch, before the next receive; a
// failed request is logged and never stops the loop.
func (r *Responder) Serve(ctx context.Context) error {
	defer r.conn.Close()
	go func() {
		<-ctx.Done()
		r.conn.Close()
	}()

	buf := make([]byte, 2048)
	for {
		n, _, src, err := r.pc.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		req := parseRequest(string(buf[:n]))
		if r.cfg.Verbose {
			log.Printf("request from %s: kinds=%v compress=%v", src, req.kinds, req.multi)
		}

		replies, err := r.replies(ctx, req)
		if err != nil {
			log.Printf("request from %s failed: %v", src, err)
			continue
		}
		for _, payload := range replies {
			if _, err := r.pc.WriteTo(payload, nil, src); err != nil {
				log.Printf("send to %s: %v", src, err)
			} else if r.cfg.Verbose {
				log.Printf("sent %d bytes to %s", len(payload), src)
			}
		}
	}
}

// request is the parsed form of one inbound datagram. The GET form asks
// for several kinds at once and its replies are compressed.
type request struct {
	kinds []string
	multi bool
}

func parseRequest(msg string) request {
	tokens := strings.Fields(msg)
	if len(tokens) == 0 {
		return request{}
	}
	if tokens[0] == "GET" {
		return request{kinds: tokens[1:], multi: true}
	}
	return request{kinds: tokens[:1]}
}

// replies builds one encoded datagram per node matching the request. The
// inventory is fetched once and shared by every requested kind, so all
// kinds of one reply set describe the same snapshot.
func (r *Responder) replies(ctx context.Context, req request) ([][]byte, error) {
	byKind := make(map[string][]Record)
	var aps []inventory.AccessPoint
	fetched := false
	for _, kind := range req.kinds {
		produce, ok := r.kinds[kind]
		if !ok {
			log.Printf("unknown response kind %q", kind)
			continue
		}
		if !fetched {
			var err error
			aps, err = r.provider.AccessPoints(ctx)
			if err != nil {
				return nil, fmt.Errorf("list access points: %w", err)
			}
			fetched = true
		}
		byKind[kind] = produce(aps)
	}

	merged := mergeNodes(byKind)
	replies := make([][]byte, 0, len(merged))
	for _, node := range merged {
		payload, err := encodeNode(node, req.multi)
		if err != nil {
			return nil, err
		}
		replies = append(replies, payload)
	}
	return replies, nil
}
