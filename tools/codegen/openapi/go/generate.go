// This file triggers Go code generation from the OpenAPI contract.
// Run manually with:
//   go generate ./tools/codegen/openapi/go
//
// Generates code into /generated/go/<domain>/ following config files
// stored under /tools/codegen/openapi/go/configs/. Each config selects
// the operations of one tag from contracts/api.yaml.

package main

//go:generate go tool oapi-codegen -config ./configs/users.yaml          ../../../../contracts/api.yaml
//go:generate go tool oapi-codegen -config ./configs/roles.yaml          ../../../../contracts/api.yaml
//go:generate go tool oapi-codegen -config ./configs/custom-objects.yaml ../../../../contracts/api.yaml
//go:generate go tool oapi-codegen -config ./configs/items.yaml          ../../../../contracts/api.yaml
//go:generate go tool oapi-codegen -config ./configs/customers.yaml      ../../../../contracts/api.yaml

func main() {}
