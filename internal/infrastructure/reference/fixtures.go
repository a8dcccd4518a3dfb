package reference

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"fracture-tutor/internal/domain/entity"
)

// LoadFixtures читает эталон для офлайн-режима: объект {"<image_id>": [записи API]}
func LoadFixtures(r io.Reader, color string) (*StaticSource, error) {
	var sets map[string][]entity.ReferenceRecord
	if err := json.NewDecoder(r).Decode(&sets); err != nil {
		return nil, fmt.Errorf("decode reference fixtures: %w", err)
	}
	if color == "" {
		color = DefaultColor
	}

	imageIDs := make([]string, 0, len(sets))
	for id := range sets {
		imageIDs = append(imageIDs, id)
	}
	sort.Strings(imageIDs)

	src := NewStaticSource()
	for _, imageID := range imageIDs {
		records := sets[imageID]
		dets := make([]entity.Detection, 0, len(records))
		seen := make(map[string]bool, len(records))
		for i, rec := range records {
			if rec.Source == entity.SourceStudent {
				continue
			}
			d := rec.ToDetection(i, color)
			if seen[d.ID] {
				return nil, &entity.ValidationError{Reason: "duplicate reference detection id in " + imageID, IDs: []string{d.ID}}
			}
			seen[d.ID] = true
			dets = append(dets, d)
		}
		src.Set(imageID, dets)
	}
	return src, nil
}

// LoadFixtureFile читает эталон из файла
func LoadFixtureFile(path, color string) (*StaticSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference fixtures: %w", err)
	}
	defer f.Close()

	return LoadFixtures(f, color)
}
