package store

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-keychain/models"
)

const envelopeVersion = 1

// envelope is the JSON form of an item in the keyring backends, which can
// only hold one opaque secret per entry. A nil Data marshals to null and
// marks an item without value data.
type envelope struct {
	Version    int               `json:"v"`
	Attributes map[string]string `json:"attributes"`
	Data       []byte            `json:"data"`
}

func sealEnvelope(attributes models.AttributeMap) ([]byte, error) {
	env := envelope{
		Version:    envelopeVersion,
		Attributes: make(map[string]string, len(matchKeys)),
	}
	for _, key := range matchKeys {
		if value, ok := attributes[key].(string); ok {
			env.Attributes[key] = value
		}
	}
	if data, ok := attributes.Bytes(models.AttrValueData); ok {
		env.Data = append([]byte{}, data...)
	}

	return json.Marshal(env)
}

func openEnvelope(raw []byte) (models.AttributeMap, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptedItem, err)
	}
	if env.Version != envelopeVersion {
		return nil, fmt.Errorf("%w: envelope version %d", ErrCorruptedItem, env.Version)
	}
	if env.Attributes[models.AttrClass] == "" {
		return nil, fmt.Errorf("%w: missing class", ErrCorruptedItem)
	}

	attributes := make(models.AttributeMap, len(env.Attributes)+1)
	for key, value := range env.Attributes {
		attributes[key] = value
	}
	if env.Data != nil {
		attributes[models.AttrValueData] = env.Data
	}

	return attributes, nil
}
