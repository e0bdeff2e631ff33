// Package docs registers the escrow OpenAPI document with swag so the Swagger
// UI under /swagger/ renders the same contract the request validator enforces.
package docs

import (
	"sync"

	"escrow/internal/api/servers"

	"github.com/swaggo/swag"
)

// InstanceName is the swag registry key echo-swagger reads by default.
const InstanceName = "swagger"

// openAPIDoc serves servers.GetSwagger as JSON. An invalid document yields an
// empty doc, which the UI reports as a load failure.
type openAPIDoc struct {
	once sync.Once
	doc  string
}

func (d *openAPIDoc) ReadDoc() string {
	d.once.Do(func() {
		swagger, err := servers.GetSwagger()
		if err != nil {
			return
		}
		raw, err := swagger.MarshalJSON()
		if err != nil {
			return
		}
		d.doc = string(raw)
	})
	return d.doc
}

func init() {
	swag.Register(InstanceName, &openAPIDoc{})
}
