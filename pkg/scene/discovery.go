package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// SceneInfo describes a scene that can be rendered
type SceneInfo struct {
	ID          string // Name to pass on the command line
	DisplayName string
	Description string
	Type        string // "builtin" or "file"
	FilePath    string // Path to the JSON file (file type only)
}

var builtinDescriptions = map[string]string{
	"simple":     "Diffuse sphere on a ground sphere",
	"default":    "Diffuse, glass, hollow glass and metal spheres with depth of field",
	"spheregrid": "Grid of colored glass, metal and diffuse spheres",
}

// ListBuiltinScenes returns the built-in scenes sorted by name
func ListBuiltinScenes() []SceneInfo {
	var scenes []SceneInfo
	for _, name := range Names() {
		scenes = append(scenes, SceneInfo{
			ID:          name,
			DisplayName: titleCase(name),
			Description: builtinDescriptions[name],
			Type:        "builtin",
		})
	}
	return scenes
}

// ListSceneFiles scans dir for JSON scene files. A missing directory yields no scenes.
func ListSceneFiles(dir string, logger core.Logger) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, path := range files {
		info, err := ParseSceneInfo(path)
		if err != nil {
			// Skip unreadable files but keep listing the rest
			logger.Printf("Warning: failed to read metadata for %s: %v\n", path, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ParseSceneInfo reads the name and description of a JSON scene file,
// falling back to the file name when the scene is unnamed
func ParseSceneInfo(path string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	info := SceneInfo{
		ID:          path,
		DisplayName: titleCase(base),
		Type:        "file",
		FilePath:    path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return info, err
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return info, fmt.Errorf("%w: %v", ErrInvalidSceneFile, err)
	}

	if header.Name != "" {
		info.DisplayName = header.Name
	}
	info.Description = header.Description
	return info, nil
}

// ListAllScenes returns the built-in scenes followed by the scene files in dir
func ListAllScenes(dir string, logger core.Logger) ([]SceneInfo, error) {
	files, err := ListSceneFiles(dir, logger)
	if err != nil {
		return nil, err
	}
	return append(ListBuiltinScenes(), files...), nil
}

// titleCase turns a file or scene name like "sphere-grid" into "Sphere Grid"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
