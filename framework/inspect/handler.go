// Package inspect serves a read-only JSON view of an injector chain.
//
//	GET /injector                  summary of the node
//	GET /injector/bindings         the node's own bindings
//	GET /injector/bindings/{type}  which node answers a key (?name= qualifies it)
//	GET /injector/chain            summaries from the node up to the root
//
// Nothing here resolves instances, so inspecting never builds a singleton.
package inspect

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	gohttp "github.com/km-arc/go-injector/framework/http"
	"github.com/km-arc/go-injector/framework/injector"
	"github.com/km-arc/go-injector/framework/routing"
)

// Handler exposes one injector over HTTP.
type Handler struct {
	inj    *injector.Injector
	router *routing.Router
}

// New builds the inspect routes for inj. logger may be nil.
func New(inj *injector.Injector, logger *zap.Logger) *Handler {
	h := &Handler{inj: inj, router: routing.New(logger)}
	h.router.Middleware(middleware.NoCache)
	h.router.Prefix("/injector", func(r *routing.Router) {
		r.Get("/", h.summary)
		r.Get("/bindings", h.bindings)
		r.Get("/bindings/{type}", h.binding)
		r.Get("/chain", h.chain)
	})
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// ── Views ─────────────────────────────────────────────────────────────────────

type nodeView struct {
	ID       string `json:"id"`
	Parent   string `json:"parent,omitempty"`
	Depth    int    `json:"depth"`
	Bindings int    `json:"bindings"`
}

type bindingView struct {
	Type  string `json:"type"`
	Name  string `json:"name,omitempty"`
	Named bool   `json:"named"`
	Kind  string `json:"kind"`
	Built bool   `json:"built,omitempty"`
}

type lookupView struct {
	bindingView
	Owner string `json:"owner"`
	Local bool   `json:"local"`
}

func viewNode(n *injector.Injector) nodeView {
	v := nodeView{
		ID:       n.ID(),
		Depth:    len(n.Chain()) - 1,
		Bindings: len(n.Bindings()),
	}
	if p := n.GetParentInjector(); p != nil {
		v.Parent = p.ID()
	}
	return v
}

func viewBinding(b injector.BindingInfo) bindingView {
	return bindingView{
		Type:  b.Key.Type,
		Name:  b.Key.Name,
		Named: b.Key.Named,
		Kind:  b.Kind,
		Built: b.Built,
	}
}

// ── Handlers ──────────────────────────────────────────────────────────────────

func (h *Handler) summary(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Success(viewNode(h.inj))
}

func (h *Handler) bindings(w http.ResponseWriter, _ *http.Request) {
	infos := h.inj.Bindings()
	out := make([]bindingView, 0, len(infos))
	for _, b := range infos {
		out = append(out, viewBinding(b))
	}
	gohttp.NewResponse(w).Success(out)
}

func (h *Handler) binding(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)
	key := injector.TypeKey(routing.Param(r, "type"))
	if q := r.URL.Query(); q.Has("name") {
		key = injector.NamedKey(key.Type, q.Get("name"))
	}

	owner, info, ok := h.inj.Lookup(key)
	if !ok {
		res.NotFound((&injector.MappingNotFoundError{Key: key}).Error())
		return
	}
	res.Success(lookupView{
		bindingView: viewBinding(info),
		Owner:       owner.ID(),
		Local:       owner == h.inj,
	})
}

func (h *Handler) chain(w http.ResponseWriter, _ *http.Request) {
	nodes := h.inj.Chain()
	out := make([]nodeView, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, viewNode(n))
	}
	gohttp.NewResponse(w).Success(out)
}
