// File: lixenwraith/fini/doc.go

// Package fini resolves configuration values from three sources and runs each
// selected value through a chain of named conversion functions.
//
// Sources, highest precedence first:
//  1. Commandline arguments, pre-parsed into an option -> value mapping
//  2. Environment variables, bound explicitly per option
//  3. The sectioned store (INI text, or TOML/YAML/JSON mapped to sections)
//
// An argument bound to anything but nil wins, including false and "". An
// environment variable wins only when non-empty.
//
// FINI text:
//
// FINI is INI whose values may open with help lines, then metadata lines,
// then the literal value:
//
//	[server]
//	hosts =
//	    : Hosts to listen on.
//	    : Repeat or separate with commas.
//	    :: names: H
//	    :: f: comma
//	    localhost, 127.0.0.1
//
// The "f" metadata names the function chain; the other metadata and the help
// lines feed ArgSpecs, from which commandline flags are built (see the
// flagbind package).
//
// Quick Start:
//
//	cfg, err := fini.Fetch("app.ini")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.SetEnvNames(map[string]string{"hosts": "APP_HOSTS"})
//
//	server, err := cfg.Section("server")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	hosts, _ := server.Strings("hosts") // ["localhost", "127.0.0.1"]
//
// Built-in functions: bool, int, float, comma, line, bar, cmd, cmds, fmt and
// plus. Register more on a Registry with NewFunction.
//
// Thread Safety:
// Config and Section are not safe for concurrent use. Resolved values are
// cached per section until Invalidate is called; rebinding arguments or
// environment names does not clear the cache. Registry is safe for
// concurrent use.
package fini
