package memory

import (
	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	setting *settingRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		setting: newSettingRepository(),
	}
}

func (m *Memory) Setting() interfaces.SettingRepository {
	return m.setting
}

func (m *Memory) Close() error {
	return nil
}
