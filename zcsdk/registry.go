package zcsdk

import (
	"fmt"
	"sort"
	"sync"

	"github.com/andyle182810/zenlayercloud-sdk-go/credentials"
)

// Registry holds one Client per named account so facades for the same
// account share a connection pool and signer.
type Registry struct {
	clients     map[string]*Client
	mu          sync.RWMutex
	defaultOpts []Option
}

func NewRegistry(defaultOpts ...Option) *Registry {
	return &Registry{
		clients:     make(map[string]*Client),
		mu:          sync.RWMutex{},
		defaultOpts: defaultOpts,
	}
}

// Register builds a client for name, replacing any earlier one.
func (r *Registry) Register(name string, credential credentials.AccessKeyCredential, opts ...Option) error {
	allOpts := make([]Option, 0, len(r.defaultOpts)+len(opts))
	allOpts = append(allOpts, r.defaultOpts...)
	allOpts = append(allOpts, opts...)

	client, err := New(credential, allOpts...)
	if err != nil {
		return fmt.Errorf("zcsdk: register %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.clients[name] = client

	return nil
}

func (r *Registry) MustClient(name string) *Client {
	client, ok := r.GetClient(name)
	if !ok {
		panic(fmt.Sprintf("zcsdk: account %q not registered", name))
	}

	return client
}

func (r *Registry) GetClient(name string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[name]

	return client, ok
}

func (r *Registry) Has(name string) bool {
	_, ok := r.GetClient(name)

	return ok
}

func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.clients[name]
	if ok {
		delete(r.clients, name)
	}

	return ok
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.clients)
}
