package training

import "github.com/athletiq/athlete-tracker/internal/training/model"

type Player = model.Player
