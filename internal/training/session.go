package training

import "github.com/athletiq/athlete-tracker/internal/training/model"

// Session is one recorded training test event for a player.
// The definition lives in the model package so that leaf packages
// (insights, validate) can share it without importing training.
type Session = model.Session

// BroadJumps holds the six jump distances of a session, in centimeters.
type BroadJumps = model.BroadJumps

type JumpType = model.JumpType

const (
	JumpLeftSingle   = model.JumpLeftSingle
	JumpRightSingle  = model.JumpRightSingle
	JumpDoubleSingle = model.JumpDoubleSingle
	JumpLeftTriple   = model.JumpLeftTriple
	JumpRightTriple  = model.JumpRightTriple
	JumpDoubleTriple = model.JumpDoubleTriple
)

// JumpTypes lists all jump types in their canonical display order.
var JumpTypes = model.JumpTypes
