package schema

import "fmt"

// GLogS schema mirrors the JSON layout GLogS loads its graph metadata
// from. Column lists are always empty here: gCard schemas carry no
// property columns.

type GLogSLabel struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type GLogSEntity struct {
	Columns []string   `json:"columns"`
	Label   GLogSLabel `json:"label"`
}

type GLogSEntityPair struct {
	Src GLogSLabel `json:"src"`
	Dst GLogSLabel `json:"dst"`
}

type GLogSRelation struct {
	Columns     []string          `json:"columns"`
	EntityPairs []GLogSEntityPair `json:"entity_pairs"`
	Label       GLogSLabel        `json:"label"`
}

type GLogSSchema struct {
	Entities   []GLogSEntity   `json:"entities"`
	Relations  []GLogSRelation `json:"relations"`
	IsColumnID bool            `json:"is_column_id"`
	IsTableID  bool            `json:"is_table_id"`
}

// GLogS converts a gCard schema to the corresponding GLogS schema.
// Entities follow vertex label id order; relations follow the schema's
// edge declaration order.
func (s *Schema) GLogS() (*GLogSSchema, error) {
	out := &GLogSSchema{
		Entities:   []GLogSEntity{},
		Relations:  []GLogSRelation{},
		IsColumnID: false,
		IsTableID:  true,
	}

	for _, vl := range s.SortedVertexLabels() {
		out.Entities = append(out.Entities, GLogSEntity{
			Columns: []string{},
			Label:   GLogSLabel{ID: vl.ID, Name: vl.Name},
		})
	}

	vertexNames := s.VertexLabelNames()
	edgeNames := s.EdgeLabelNames()

	for _, e := range s.Edges {
		srcName, ok := vertexNames[e.From]
		if !ok {
			return nil, fmt.Errorf("unknown source vertex label id %d", e.From)
		}

		dstName, ok := vertexNames[e.To]
		if !ok {
			return nil, fmt.Errorf("unknown destination vertex label id %d", e.To)
		}

		edgeName, ok := edgeNames[e.Label]
		if !ok {
			return nil, fmt.Errorf("unknown edge label id %d", e.Label)
		}

		out.Relations = append(out.Relations, GLogSRelation{
			Columns: []string{},
			EntityPairs: []GLogSEntityPair{{
				Src: GLogSLabel{ID: e.From, Name: srcName},
				Dst: GLogSLabel{ID: e.To, Name: dstName},
			}},
			Label: GLogSLabel{ID: e.Label, Name: edgeName},
		})
	}

	return out, nil
}
