package withrottle

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// Locomotive is an address acquired on the throttle.
type Locomotive struct {
	// Address is the roster address, S<digits> or L<digits>.
	Address string
	// Entry is the roster entry name reported by the server.
	Entry string
}

// roster tracks the locomotives the server has confirmed on this throttle.
//
// The engine writes from its poll goroutine; readers such as a UI goroutine
// may call Protocol.Locomotives concurrently.
type roster struct {
	locos *xsync.MapOf[string, Locomotive]
}

func newRoster() *roster {
	return &roster{locos: xsync.NewMapOf[string, Locomotive]()}
}

func (r *roster) add(address string, entry string) {
	r.locos.Store(address, Locomotive{Address: address, Entry: entry})
}

// remove deletes address, or every locomotive when address is "*".
func (r *roster) remove(address string) {
	if address == Wildcard {
		r.locos.Clear()
		return
	}
	r.locos.Delete(address)
}

func (r *roster) has(address string) bool {
	_, ok := r.locos.Load(address)
	return ok
}

func (r *roster) list() []Locomotive {
	locos := make([]Locomotive, 0, r.locos.Size())
	r.locos.Range(func(_ string, loco Locomotive) bool {
		locos = append(locos, loco)
		return true
	})

	return locos
}

func (r *roster) clear() {
	r.locos.Clear()
}
