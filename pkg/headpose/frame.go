package headpose

import "fmt"

// Frame is the result of processing one image: the detected face
// regions and their landmark sets, bound to the camera state and the
// solver configuration in effect when the image was processed. Pose
// solves are pure functions of this value, so repeated calls for the
// same face return bit-identical transforms.
type Frame struct {
	camera    *CameraModel
	cfg       Config
	regions   []Region
	landmarks []Landmarks
}

// Faces returns the number of faces in the frame.
func (f *Frame) Faces() int { return len(f.landmarks) }

// Landmarks returns face i's landmark set.
func (f *Frame) Landmarks(i int) (Landmarks, error) {
	if i < 0 || i >= len(f.landmarks) {
		return Landmarks{}, fmt.Errorf("%w: %d of %d", ErrFaceIndex, i, len(f.landmarks))
	}
	return f.landmarks[i], nil
}

// Regions returns the detected face regions, index-aligned with the
// landmark sets. Frames built directly from landmark sets have none.
func (f *Frame) Regions() []Region { return f.regions }

// Region returns face i's bounding region.
func (f *Frame) Region(i int) (Region, error) {
	if i < 0 || i >= len(f.regions) {
		return Region{}, fmt.Errorf("%w: %d of %d", ErrFaceIndex, i, len(f.regions))
	}
	return f.regions[i], nil
}

// Pose solves the head pose for face i of this frame.
func (f *Frame) Pose(i int) (Transform, error) {
	if i < 0 || i >= len(f.landmarks) {
		return Transform{}, fmt.Errorf("%w: %d of %d", ErrFaceIndex, i, len(f.landmarks))
	}
	model, observed := f.cfg.Scheme.Correspondences(f.landmarks[i])
	rot, trans := solvePnP(f.camera, model, observed, f.cfg.InitialGuess, f.cfg.MaxIterations)
	return newTransform(rot, trans), nil
}

// Poses solves every face in the frame, index-aligned with the
// landmark sets. A faceless frame yields an empty slice.
func (f *Frame) Poses() ([]Transform, error) {
	poses := make([]Transform, 0, len(f.landmarks))
	for i := range f.landmarks {
		pose, err := f.Pose(i)
		if err != nil {
			return nil, err
		}
		poses = append(poses, pose)
	}
	return poses, nil
}
