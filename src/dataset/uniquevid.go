package dataset

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/cardbench/benchconv/src/schema"
)

// MakeVertexIDsUnique rewrites a dataset so that vertex ids are
// globally unique instead of per-label unique. Every (label, local id)
// pair is assigned a sequential global id, vertex labels processed in
// label id order so the numbering is deterministic, and every edge
// file is rewritten through the per-label maps. Each file is replaced
// atomically via a temp file and rename; replacement is not
// transactional across files.
func MakeVertexIDsUnique(s *schema.Schema, store *Store) error {
	nextGlobalID := 0
	globalVertexMap := make(map[int]map[int]int, len(s.VertexLabels))

	var staged []stagedFile

	for _, vl := range s.SortedVertexLabels() {
		localIDs, err := store.ReadVertexIDs(vl.Name)
		if err != nil {
			return err
		}

		localMap := make(map[int]int, len(localIDs))
		for _, localID := range localIDs {
			if _, ok := localMap[localID]; ok {
				return fmt.Errorf("duplicate vertex id %d in label %s", localID, vl.Name)
			}

			localMap[localID] = nextGlobalID
			nextGlobalID++
		}

		globalVertexMap[vl.ID] = localMap

		globalIDs := make([]int, 0, len(localMap))
		for _, id := range localMap {
			globalIDs = append(globalIDs, id)
		}
		sort.Ints(globalIDs)

		rows := [][]string{{"id"}}
		for _, id := range globalIDs {
			rows = append(rows, []string{strconv.Itoa(id)})
		}

		sf, err := store.stageRows(vl.Name, rows)
		if err != nil {
			return err
		}

		staged = append(staged, sf)
	}

	for _, el := range s.SortedEdgeLabels() {
		srcLabelID, dstLabelID, err := s.EndpointLabels(el.ID)
		if err != nil {
			return err
		}

		srcMap, ok := globalVertexMap[srcLabelID]
		if !ok {
			return fmt.Errorf("edge label %s: no vertex map for source label %d", el.Name, srcLabelID)
		}

		dstMap, ok := globalVertexMap[dstLabelID]
		if !ok {
			return fmt.Errorf("edge label %s: no vertex map for destination label %d", el.Name, dstLabelID)
		}

		edges, err := store.ReadEdges(el.Name)
		if err != nil {
			return err
		}

		rows := [][]string{{"src", "dst"}}
		for _, e := range edges {
			src, ok := srcMap[e[0]]
			if !ok {
				return fmt.Errorf("edge label %s: unknown source vertex id %d", el.Name, e[0])
			}

			dst, ok := dstMap[e[1]]
			if !ok {
				return fmt.Errorf("edge label %s: unknown destination vertex id %d", el.Name, e[1])
			}

			rows = append(rows, []string{strconv.Itoa(src), strconv.Itoa(dst)})
		}

		sf, err := store.stageRows(el.Name, rows)
		if err != nil {
			return err
		}

		staged = append(staged, sf)
	}

	for _, sf := range staged {
		if err := store.commit(sf); err != nil {
			return err
		}
	}

	return nil
}
