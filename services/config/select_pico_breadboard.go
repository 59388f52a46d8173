//go:build board_pico_breadboard

package config

const selectedBoard = "pico_breadboard"
