package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-raycast-tracer/pkg/core"
	"github.com/df07/go-raycast-tracer/pkg/geometry"
	"github.com/df07/go-raycast-tracer/pkg/material"
	"github.com/df07/go-raycast-tracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	Index        int                    `json:"index"`
	Name         string                 `json:"name,omitempty"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FarDistance  float64                `json:"farDistance"`
	FarNormal    [3]float64             `json:"farNormal"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo names the dominant behavior of a material and lists its attributes
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"diffuse":   vecArray(mat.Diffuse),
		"color":     hexColor(mat.Diffuse),
		"specular":  mat.Specular,
		"roughness": mat.Roughness,
		"glow":      mat.Glow,
	}

	switch {
	case mat.IsEmissive():
		return "emissive", properties
	case mat.Transparent:
		properties["refractionRatio"] = mat.EffectiveRefractionRatio()
		return "transparent", properties
	case mat.Specular >= 1:
		return "metal", properties
	case mat.Specular > 0:
		return "mixed", properties
	default:
		return "diffuse", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case geometry.Plane:
		properties["point"] = vecArray(geom.Point)
		properties["normal"] = vecArray(geom.Normal)
	case geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
	case geometry.Capsule:
		properties["a"] = vecArray(geom.A)
		properties["b"] = vecArray(geom.B)
		properties["radius"] = geom.Radius
	case geometry.Box:
		properties["center"] = vecArray(geom.Center)
		properties["size"] = vecArray(geom.Size)
	}
	return geometry.Kind(shape), properties
}

// inspectPixel casts the primary ray through pixel (x, y) and returns the nearest hit
func inspectPixel(sceneObj *scene.Scene, width, height, x, y int) (core.Ray, scene.Hit) {
	ray := sceneObj.Camera().GetRay(float64(x), float64(y), width, height)
	return ray, sceneObj.Raycast(ray.Origin, ray.Direction, scene.NoHit)
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sceneID := query.Get("scene")
	if sceneID == "" {
		sceneID = "default"
	}

	width, err := parseIntParam(query, "width", 400, 1, 2000)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	height, err := parseIntParam(query, "height", 225, 1, 2000)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	seed, err := parseIntParam(query, "seed", 42, 0, 1<<30)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	sceneObj, status, err := s.loadScene(sceneID, int64(seed))
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	ray, hit := inspectPixel(sceneObj, width, height, pixelX, pixelY)
	if !hit.Found() {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Index: scene.NoHit})
		return
	}

	prim := sceneObj.Primitives[hit.Index]
	materialType, materialProps := extractMaterialInfo(prim.Material)
	geometryType, geometryProps := extractGeometryInfo(prim.Shape)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		Index:        hit.Index,
		Name:         prim.Name,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(hit.Point(ray.Origin, ray.Direction)),
		Normal:       vecArray(hit.NearNormal),
		Distance:     hit.Near,
		FarDistance:  hit.Far,
		FarNormal:    vecArray(hit.FarNormal),
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
