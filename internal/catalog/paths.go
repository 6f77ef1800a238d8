package catalog

import (
	"strings"

	"github.com/vmunix/xbmcpub/internal/media"
)

// Server maps storage locations to a publishing target.
type Server struct {
	ID              string
	StorageRoots    []string
	PublicationRoot string
}

// Resolver assigns files to servers by their storage path.
type Resolver struct {
	servers []Server
}

// NewResolver creates a Resolver. Servers are tried in order.
func NewResolver(servers []Server) *Resolver {
	return &Resolver{servers: servers}
}

func cleanPath(p string) string {
	return strings.TrimRight(strings.ReplaceAll(strings.TrimSpace(p), `\`, "/"), "/")
}

// hasRootPrefix matches root case-insensitively on a path boundary and
// returns the remainder, which starts with "/" or is empty. An empty root is
// the cleaned form of "/" and claims every absolute path.
func hasRootPrefix(p, root string) (string, bool) {
	if root == "" {
		return p, strings.HasPrefix(p, "/")
	}
	if len(p) < len(root) || !strings.EqualFold(p[:len(root)], root) {
		return "", false
	}
	rest := p[len(root):]
	if rest != "" && rest[0] != '/' {
		return "", false
	}
	return rest, true
}

// Resolve sets the server and publication path of f. Files outside every
// storage root stay unbound and are published from their storage path.
func (r *Resolver) Resolve(f *media.File) {
	p := cleanPath(f.StoragePath)
	f.PublicationPath = p
	for _, s := range r.servers {
		for _, root := range s.StorageRoots {
			if strings.TrimSpace(root) == "" {
				continue
			}
			rest, ok := hasRootPrefix(p, cleanPath(root))
			if !ok {
				continue
			}
			f.Server = s.ID
			if s.PublicationRoot != "" {
				f.PublicationPath = cleanPath(s.PublicationRoot) + rest
			}
			return
		}
	}
}
