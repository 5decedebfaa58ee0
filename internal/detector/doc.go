// Package detector turns camera frames into landmark detections.
//
// MediaPipeDetector drives scripts/landmark_service.py, a Python process
// running the MediaPipe hands, face detection and face mesh solutions. It is
// started as
//
//	python3 landmark_service.py --max-hands N --max-faces N --min-confidence F [--refine-landmarks]
//
// and then serves one request per frame over its standard streams:
//
//   - request: a 4-byte big-endian length followed by that many bytes of a
//     JPEG of the frame, already mirrored by the camera.
//   - response: one line of JSON,
//     {"hands":[{"points":[{"x":..,"y":..,"z":..}, ...],"handedness":"Right","score":0.98}],
//     "face":{"points":[...]},"face_present":true}
//
// Each hand carries exactly 21 points and the face 468 points, or 478 with
// refined landmarks. "face" is null when the mesh finds no face, while
// "face_present" reports the separate face detector. Anything else is
// rejected with landmark.ErrMalformedLandmarks. The script writes diagnostics
// to standard error only.
package detector
