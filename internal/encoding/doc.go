// Package encoding builds the two first-stage ffmpeg jobs: the looping menu
// video made from the rendered still image, and the transcode of the feature
// video into Blu-ray compatible H.264/AC-3.
//
// Both jobs write fixed-name .m2ts files next to their input so the authoring
// stage can find them.
package encoding
