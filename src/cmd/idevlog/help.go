// FILE: idevlog/src/cmd/idevlog/help.go
package main

const helpText = `idevlog: stream and filter the system log of an attached iOS device.

Usage:
  idevlog [command] [options]

Commands:
  syslog      Stream the device syslog (default)
  info        Print device properties
  config      Write the default configuration file
  version     Show version information
  help        Display this help

Common options:
  -config <path>         Config file (default: ~/.config/idevlog.toml)
  -udid <udid>           Target device, default is the first attached device
  -transport <name>      relay (idevicesyslog) or tail (follow a captured file)
  -tail-path <path>      File followed by the tail transport
  -log-level <level>     debug, info, warn, error
  -log-output <mode>     file, stdout, stderr, both, none
  -quiet                 Suppress diagnostics

syslog options:
  -output <name>         stdout, file, journal
  -file <path>           Append records to path (implies -output file)
  -color <mode>          always, never, auto
  -journal               Also forward records to the systemd journal
  -format <fmt>          Record format: txt, json, raw
  -template <layout>     txt layout, e.g. '{{.Process}}: {{.Message}}'
  -filter <stage>        Filter stage, repeatable, applied in order:
                           match:<text>        keep messages containing text
                           untrigger:<text>    skip the rest of a chunk at text
                           process:<a,b>       keep processes containing every name
                           exclude:<a,b>       drop processes containing any name
                           quiet               drop noisy system daemons
                           kernel_only | no_kernel | nothing
  -status                Serve /status and /metrics
  -status-port <port>    Status endpoint port

info options:
  -domain <name>         Property domain, e.g. battery, disk_usage
  -key <key>             Print a single property, e.g. ProductVersion
  -format <fmt>          text, yaml, json

Configuration sources (precedence: CLI > env IDEVLOG_* > file > defaults).
Send SIGHUP to reload filters from the config file while streaming.

Examples:
  # Everything but the usual noise, no kernel
  idevlog -filter quiet -filter no_kernel

  # Wi-Fi messages of one device into a file
  idevlog -udid 00008030-001A -filter match:wifi -file wifi.log

  # JSON lines for later processing
  idevlog -format json -file device.jsonl

  # Battery properties as YAML
  idevlog info -domain battery -format yaml
`
