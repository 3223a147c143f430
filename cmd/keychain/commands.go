package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-keychain/internal/config"
	"github.com/MKhiriev/go-keychain/internal/service"
	"github.com/MKhiriev/go-keychain/models"
)

const (
	cmdSave    = "save"
	cmdFetch   = "fetch"
	cmdRemove  = "remove"
	cmdVersion = "version"
)

const usage = `usage: keychain [global flags] <command> [flags] [key=value ...]

commands:
  save     store the key=value pairs as the payload of a generic password
  fetch    print the stored payload as JSON
  remove   delete the item
  version  print build information

command flags:
  -service   service name
  -account   account name
  -group     access group
  -mode      accessibility mode (ak, ck, aku, cku, akpu)
  -allow     extra payload types fetch may decode, comma separated
`

var (
	ErrNoCommand      = errors.New("no command given")
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingAccount = errors.New("-account is required")
	ErrInvalidPair    = errors.New("payload fields must be key=value")
	ErrUnexpectedArgs = errors.New("unexpected arguments")
	ErrInvalidMode    = errors.New("invalid accessibility mode")
	ErrInvalidType    = errors.New("unknown payload type")
)

type command struct {
	name string
	item models.ItemDescriptor
}

// parseCommand parses "<command> [flags] [key=value ...]". Unset item flags
// fall back to defaults.
func parseCommand(args []string, defaults config.Item) (command, error) {
	if len(args) == 0 {
		return command{}, ErrNoCommand
	}

	cmd := command{name: args[0]}
	switch cmd.name {
	case cmdVersion:
		return cmd, nil
	case cmdSave, cmdFetch, cmdRemove:
	default:
		return command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.name)
	}

	var (
		identity models.GenericPassword
		mode     string
		allowed  string
	)
	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&identity.ServiceName, "service", defaults.ServiceName, "Service name")
	fs.StringVar(&identity.AccountName, "account", "", "Account name")
	fs.StringVar(&identity.AccessGroup, "group", defaults.AccessGroup, "Access group")
	fs.StringVar(&mode, "mode", defaults.AccessMode, "Accessibility mode")
	fs.StringVar(&allowed, "allow", "", "Allowed payload types, comma separated")

	if err := fs.Parse(args[1:]); err != nil {
		return command{}, fmt.Errorf("error parsing %s flags: %w", cmd.name, err)
	}

	if identity.AccountName == "" {
		return command{}, ErrMissingAccount
	}
	if mode != "" {
		identity.AccessMode = models.Accessibility(mode)
		if !identity.AccessMode.Valid() {
			return command{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
		}
	}

	tags, err := parseTypeTags(allowed)
	if err != nil {
		return command{}, err
	}

	payload, err := parsePayload(fs.Args())
	if err != nil {
		return command{}, err
	}
	if payload != nil && cmd.name != cmdSave {
		return command{}, fmt.Errorf("%w for %s: %v", ErrUnexpectedArgs, cmd.name, fs.Args())
	}

	cmd.item = identity.Descriptor(payload, tags...)
	return cmd, nil
}

func parseTypeTags(s string) ([]models.TypeTag, error) {
	var tags []models.TypeTag
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tag := models.TypeTag(part)
		if !tag.Known() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidType, part)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func parsePayload(pairs []string) (models.Payload, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	payload := make(models.Payload, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPair, pair)
		}
		payload[key] = value
	}
	return payload, nil
}

// execute runs cmd on items. fetch writes the payload to out as a JSON
// object, "{}" when nothing is stored.
func execute(ctx context.Context, items service.ItemService, cmd command, out io.Writer) error {
	switch cmd.name {
	case cmdSave:
		return items.Save(ctx, cmd.item)
	case cmdRemove:
		return items.Remove(ctx, cmd.item)
	case cmdFetch:
		fetched, err := items.Fetch(ctx, cmd.item)
		if err != nil {
			return err
		}

		payload := fetched.Payload
		if payload == nil {
			payload = models.Payload{}
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.name)
}
