package entity

import (
	"fmt"

	"github.com/milk9111/touchmove/ecs"
	"github.com/milk9111/touchmove/ecs/component"
	"github.com/milk9111/touchmove/prefabs"
)

func NewCamera(w *ecs.World) (ecs.Entity, *component.Camera, error) {
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return 0, nil, fmt.Errorf("camera: load spec: %w", err)
	}
	return NewCameraFromSpec(w, cameraSpec)
}

func NewCameraFromSpec(w *ecs.World, cameraSpec *prefabs.CameraSpec) (ecs.Entity, *component.Camera, error) {
	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, nil, fmt.Errorf("camera: add camera tag: %w", err)
	}

	smooth := cameraSpec.Smoothness
	if smooth == 0 {
		smooth = 0.15
	}
	zoom := cameraSpec.Zoom
	if zoom <= 0 {
		zoom = 32
	}
	cam := &component.Camera{
		TargetName: "player",
		Yaw:        cameraSpec.Yaw,
		Pitch:      cameraSpec.Pitch,
		Zoom:       zoom,
		Smoothness: smooth,
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), cam); err != nil {
		return 0, nil, fmt.Errorf("camera: add camera component: %w", err)
	}

	return camera, cam, nil
}
