package probe

import (
	"encoding/json"
	"fmt"

	"github.com/lyzrex/lythrion-status/internal/domain"
)

// SchemaKind selects how a status response body is parsed.
// The main proxy is monitored through the public multi-protocol status
// API; the two shards expose the internal core schema.
type SchemaKind int

const (
	SchemaPublic SchemaKind = iota
	SchemaCore
)

// parsed is the schema-independent result of a body parse.
// Latency is measured by the prober, not parsed.
type parsed struct {
	online        bool
	playersOnline int
	playersMax    int
	version       string
}

type parserFunc func(body []byte) (parsed, error)

func parserFor(kind SchemaKind) parserFunc {
	if kind == SchemaCore {
		return parseCore
	}
	return parsePublic
}

// publicBody is the public multi-protocol status shape:
// top-level online, nested players, version with name_raw/name.
type publicBody struct {
	Online  bool `json:"online"`
	Players struct {
		Online int `json:"online"`
		Max    int `json:"max"`
	} `json:"players"`
	Version struct {
		NameRaw string `json:"name_raw"`
		Name    string `json:"name"`
	} `json:"version"`
}

func parsePublic(body []byte) (parsed, error) {
	var b publicBody
	if err := json.Unmarshal(body, &b); err != nil {
		return parsed{}, fmt.Errorf("failed to parse public status body: %w", err)
	}

	version := b.Version.NameRaw
	if version == "" {
		version = b.Version.Name
	}
	if version == "" {
		version = domain.UnknownVersion
	}

	return parsed{
		online:        b.Online,
		playersOnline: b.Players.Online,
		playersMax:    b.Players.Max,
		version:       version,
	}, nil
}

// coreBody is the internal shard schema. Older shards report flat
// playersOnline/playersMax, newer ones nest them under players; both
// shapes are accepted. A missing online field on a 200 response means
// online: reachability alone is the signal.
type coreBody struct {
	Online  *bool `json:"online"`
	Players *struct {
		Online int `json:"online"`
		Max    int `json:"max"`
	} `json:"players"`
	PlayersOnline int    `json:"playersOnline"`
	PlayersMax    int    `json:"playersMax"`
	Version       string `json:"version"`
}

func parseCore(body []byte) (parsed, error) {
	var b coreBody
	if err := json.Unmarshal(body, &b); err != nil {
		return parsed{}, fmt.Errorf("failed to parse core status body: %w", err)
	}

	p := parsed{online: true}
	if b.Online != nil {
		p.online = *b.Online
	}

	if b.Players != nil {
		p.playersOnline = b.Players.Online
		p.playersMax = b.Players.Max
	} else {
		p.playersOnline = b.PlayersOnline
		p.playersMax = b.PlayersMax
	}

	p.version = b.Version
	if p.version == "" {
		p.version = domain.UnknownVersion
	}

	return p, nil
}
