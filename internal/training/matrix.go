package training

import "github.com/athletiq/athlete-tracker/internal/training/model"

// MatrixSession is one recorded skill-drill test event,
// scored 0-100 per exercise. The definition lives in the model
// package so that leaf packages can share it without importing
// training.
type MatrixSession = model.MatrixSession

// MatrixExercises is the canonical set of skill-matrix drill keys,
// in their display order.
var MatrixExercises = model.MatrixExercises

func IsMatrixExercise(key string) bool {
	return model.IsMatrixExercise(key)
}

func MatrixExerciseLabel(key string) string {
	return model.MatrixExerciseLabel(key)
}
