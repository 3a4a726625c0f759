// Package catalogdef loads a declarative block/fluid catalog document and
// bakes it into a blocklib.Library. This is the data-driven analogue of
// constructing a blocklib.BakedLibrary by hand in Go.
package catalogdef

import (
	"bytes"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/voxelsplace/blockymesh/blocklib"
)

// schemaJSON is the jsonschema document a catalog must satisfy before
// baking. It is intentionally loose on model shape (cube vs fluid is
// distinguished by which optional fields are present) and strict on the
// structural invariants that would otherwise surface as a confusing panic
// deep inside the bake step.
const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["materials", "models"],
  "properties": {
    "materials": {"type": "array", "items": {"type": "string"}, "minItems": 1},
    "models": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "material"],
        "properties": {
          "id": {"type": "integer", "minimum": 1},
          "material": {"type": "integer", "minimum": 0},
          "color": {"type": "array", "items": {"type": "number"}, "minItems": 4, "maxItems": 4},
          "transparency_index": {"type": "integer", "minimum": 0},
          "culls_neighbors": {"type": "boolean"},
          "contributes_to_ao": {"type": "boolean"},
          "fluid": {
            "type": "object",
            "required": ["max_level", "level"],
            "properties": {
              "max_level": {"type": "integer", "minimum": 2},
              "level": {"type": "integer", "minimum": 0},
              "dip_when_flowing_down": {"type": "boolean"}
            }
          }
        }
      }
    }
  }
}`

// ModelDef is one author-time model entry. A model with a Fluid section is
// baked as a fluid model; otherwise it is a solid opaque cube.
type ModelDef struct {
	ID                uint32     `yaml:"id"`
	Material          uint32     `yaml:"material"`
	Color             [4]float32 `yaml:"color"`
	TransparencyIndex uint8      `yaml:"transparency_index"`
	CullsNeighbors    *bool      `yaml:"culls_neighbors"`
	ContributesToAO   *bool      `yaml:"contributes_to_ao"`
	Fluid             *FluidDef  `yaml:"fluid"`
}

// FluidDef is the author-time fluid section of a ModelDef.
type FluidDef struct {
	MaxLevel           uint8 `yaml:"max_level"`
	Level              uint8 `yaml:"level"`
	DipWhenFlowingDown bool  `yaml:"dip_when_flowing_down"`
}

// Document is the top-level catalog shape.
type Document struct {
	Materials []string   `yaml:"materials"`
	Models    []ModelDef `yaml:"models"`
}

// Parse validates raw YAML bytes against the catalog schema and decodes it.
func Parse(data []byte) (*Document, error) {
	var generic interface{}
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("catalogdef: parse yaml: %w", err)
	}
	if err := validateSchema(generic); err != nil {
		return nil, fmt.Errorf("catalogdef: schema validation: %w", err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalogdef: decode document: %w", err)
	}
	return &doc, nil
}

func validateSchema(doc interface{}) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("catalog.json", bytes.NewReader([]byte(schemaJSON))); err != nil {
		return err
	}
	schema, err := compiler.Compile("catalog.json")
	if err != nil {
		return err
	}
	// jsonschema validates plain JSON-ish values (map[string]interface{},
	// []interface{}, string, float64, bool, nil); yaml.v3 already decodes
	// into that shape for generic targets.
	return schema.Validate(doc)
}

// Bake turns a parsed Document into an immutable blocklib.BakedLibrary.
func Bake(doc *Document) (*blocklib.BakedLibrary, error) {
	lib := blocklib.NewBakedLibrary()
	lib.SetMaterials(doc.Materials)

	fluidIndexByMaxLevel := map[uint8]uint8{}
	for _, md := range doc.Models {
		if int(md.Material) >= len(doc.Materials) {
			return nil, fmt.Errorf("catalogdef: model %d references out-of-range material %d", md.ID, md.Material)
		}
		color := mgl32.Vec4{md.Color[0], md.Color[1], md.Color[2], md.Color[3]}
		cullsNeighbors := true
		if md.CullsNeighbors != nil {
			cullsNeighbors = *md.CullsNeighbors
		}
		contributesToAO := true
		if md.ContributesToAO != nil {
			contributesToAO = *md.ContributesToAO
		}
		model := blocklib.NewCubeModel(md.Material, color, blocklib.PatternFull)
		model.TransparencyIndex = md.TransparencyIndex
		model.CullsNeighbors = cullsNeighbors
		model.ContributesToAO = contributesToAO
		model.FluidIndex = blocklib.NullFluidIndex

		if md.Fluid != nil {
			idx, ok := fluidIndexByMaxLevel[md.Fluid.MaxLevel]
			if !ok {
				idx = lib.AddFluid(blocklib.NewBakedFluid(md.Material, md.Fluid.MaxLevel, md.Fluid.DipWhenFlowingDown))
				fluidIndexByMaxLevel[md.Fluid.MaxLevel] = idx
			}
			model.FluidIndex = idx
			model.FluidLevel = md.Fluid.Level
		}

		lib.SetModel(md.ID, model)
	}
	return lib, nil
}

// Load parses and bakes a catalog document in one step.
func Load(data []byte) (*blocklib.BakedLibrary, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Bake(doc)
}
