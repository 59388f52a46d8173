//go:build !board_pico_breadboard

package config

const selectedBoard = "bitdoglab"
