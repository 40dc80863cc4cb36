// Package cookiestore provides the session cookie jar shared by every request,
// persisted in SQLite so that separate invocations see the same session.
package cookiestore

import (
	"database/sql"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tesso57/storyterm/internal/infrastructure/logx"
	"golang.org/x/net/publicsuffix"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS cookies (
	host       TEXT    NOT NULL,
	name       TEXT    NOT NULL,
	path       TEXT    NOT NULL DEFAULT '',
	domain     TEXT    NOT NULL DEFAULT '',
	url        TEXT    NOT NULL,
	value      TEXT    NOT NULL,
	expires    INTEGER NOT NULL DEFAULT 0,
	secure     INTEGER NOT NULL DEFAULT 0,
	http_only  INTEGER NOT NULL DEFAULT 0,
	same_site  INTEGER NOT NULL DEFAULT 0,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (host, name, path, domain)
);`

// Store is an http.CookieJar whose contents survive restarts.
// An empty path keeps cookies in memory only.
type Store struct {
	mu   sync.Mutex
	path string
	db   *sql.DB
	jar  *cookiejar.Jar
	now  func() time.Time
}

// Open creates or opens the cookie database at path and loads stored cookies.
func Open(path string) (*Store, error) {
	jar, err := newJar()
	if err != nil {
		return nil, err
	}
	s := new(Store{
		path: path,
		jar:  jar,
		now:  time.Now,
	})
	if path == "" {
		return s, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}
	s.db = db
	if err := s.load(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func newJar() (*cookiejar.Jar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return jar, nil
}

// Path returns the database location, or "" for a memory-only store.
func (s *Store) Path() string {
	return s.path
}

// Cookies implements http.CookieJar.
func (s *Store) Cookies(u *url.URL) []*http.Cookie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jar.Cookies(u)
}

// SetCookies implements http.CookieJar and writes the cookies through to disk.
func (s *Store) SetCookies(u *url.URL, cookies []*http.Cookie) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jar.SetCookies(u, cookies)
	if s.db == nil {
		return
	}
	for _, c := range cookies {
		if err := s.persist(u, c); err != nil {
			logx.Warn("failed to persist cookie", "name", c.Name, "error", err.Error())
		}
	}
}

// Clear drops every cookie from memory and disk.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jar, err := newJar()
	if err != nil {
		return err
	}
	s.jar = jar
	if s.db == nil {
		return nil
	}
	if _, err := s.db.Exec(`DELETE FROM cookies`); err != nil {
		return fmt.Errorf("failed to clear session store: %w", err)
	}
	return nil
}

// Close releases the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) persist(u *url.URL, c *http.Cookie) error {
	now := s.now()
	var expires int64
	switch {
	case c.MaxAge < 0:
		return s.remove(u, c)
	case c.MaxAge > 0:
		expires = now.Add(time.Duration(c.MaxAge) * time.Second).Unix()
	case !c.Expires.IsZero():
		if !c.Expires.After(now) {
			return s.remove(u, c)
		}
		expires = c.Expires.Unix()
	}

	origin := url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}
	_, err := s.db.Exec(`
		INSERT INTO cookies (host, name, path, domain, url, value, expires, secure, http_only, same_site, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(host, name, path, domain) DO UPDATE SET
			url = excluded.url,
			value = excluded.value,
			expires = excluded.expires,
			secure = excluded.secure,
			http_only = excluded.http_only,
			same_site = excluded.same_site,
			updated_at = excluded.updated_at`,
		u.Host, c.Name, c.Path, c.Domain, origin.String(), c.Value, expires,
		c.Secure, c.HttpOnly, int(c.SameSite), now.Unix(),
	)
	return err
}

func (s *Store) remove(u *url.URL, c *http.Cookie) error {
	_, err := s.db.Exec(
		`DELETE FROM cookies WHERE host = ? AND name = ? AND path = ? AND domain = ?`,
		u.Host, c.Name, c.Path, c.Domain,
	)
	return err
}

func (s *Store) load() error {
	now := s.now()
	if _, err := s.db.Exec(`DELETE FROM cookies WHERE expires != 0 AND expires <= ?`, now.Unix()); err != nil {
		return fmt.Errorf("failed to prune session store: %w", err)
	}

	rows, err := s.db.Query(`SELECT name, path, domain, url, value, expires, secure, http_only, same_site FROM cookies`)
	if err != nil {
		return fmt.Errorf("failed to read session store: %w", err)
	}
	defer func() { _ = rows.Close() }()

	restored := 0
	for rows.Next() {
		var (
			c        http.Cookie
			rawURL   string
			expires  int64
			sameSite int
		)
		if err := rows.Scan(&c.Name, &c.Path, &c.Domain, &rawURL, &c.Value, &expires, &c.Secure, &c.HttpOnly, &sameSite); err != nil {
			return fmt.Errorf("failed to read session store: %w", err)
		}
		u, err := url.Parse(rawURL)
		if err != nil {
			continue // Skip malformed rows
		}
		if expires != 0 {
			c.Expires = time.Unix(expires, 0)
		}
		c.SameSite = http.SameSite(sameSite)
		s.jar.SetCookies(u, []*http.Cookie{&c})
		restored++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read session store: %w", err)
	}
	logx.Debug("session cookies restored", "count", restored)
	return nil
}
