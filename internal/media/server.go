package media

import "github.com/samber/lo"

// publishedOn selects the files a filtered clone keeps: video files on the
// server matching wantVideo, other files on the server or not bound to any.
func publishedOn(server string, wantVideo func(*File) bool) func(*File) bool {
	return func(f *File) bool {
		if f.Kind == FileVideo {
			return f.OnServer(server) && wantVideo(f)
		}
		return f.Server == "" || f.OnServer(server)
	}
}

func hasVideoOn(v *Video, server string, match func(*File) bool) bool {
	return lo.ContainsBy(v.Files, func(f *File) bool {
		return f.Kind == FileVideo && f.OnServer(server) && match(f)
	})
}

// FilterMovie returns the part of m published on server. specials selects
// between the feature and its bonus material. The result is false when the
// movie is not on the server or has no matching video file there.
func FilterMovie(m *Movie, server string, specials bool) (*Movie, bool) {
	if m == nil || !m.Servers.Has(server) {
		return nil, false
	}
	match := func(f *File) bool { return f.Special == specials }
	if !hasVideoOn(&m.Video, server, match) {
		return nil, false
	}
	c := m.Clone()
	c.retainFiles(publishedOn(server, match))
	c.Servers = NewServerSet(server)
	return c, true
}

// FilterSeries returns the part of s published on server: the series
// metadata plus every episode with a video file there. A series on the
// server without such episodes comes back with no episodes.
func FilterSeries(s *Series, server string) (*Series, bool) {
	if s == nil || !s.Servers.Has(server) {
		return nil, false
	}
	all := func(*File) bool { return true }
	keep := publishedOn(server, all)

	c := s.cloneHeader()
	c.retainFiles(keep)
	c.Servers = NewServerSet(server)
	for _, e := range s.Episodes {
		if !hasVideoOn(&e.Video, server, all) {
			continue
		}
		ce := e.Clone()
		ce.retainFiles(keep)
		ce.Servers = NewServerSet(server)
		c.Episodes = append(c.Episodes, ce)
	}
	return c, true
}
