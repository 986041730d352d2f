//go:build windows
// +build windows

package midiwindows

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/leandrodaf/chordie/sdk/contracts"
	"golang.org/x/sys/windows"
)

// Type definitions for MIDI handles
type HMIDIIN windows.Handle

// Constants for callback flags
const (
	CALLBACK_FUNCTION = 0x00030000 // Indicates that the callback is a function
	MIDI_IO_STATUS    = 0x00000020 // MIDI input/output status
)

// Constants for MIDI message types
const (
	MIM_OPEN      = 0x3C1 // MIDI device opened
	MIM_CLOSE     = 0x3C2 // MIDI device closed
	MIM_DATA      = 0x3C3 // MIDI data received
	MIM_ERROR     = 0x3C5 // MIDI error
	MIM_LONGERROR = 0x3C6 // Long MIDI error
	MIM_MOREDATA  = 0x3CC // More MIDI data available
)

var (
	ErrUnnamedDevice = errors.New("MIDI device capabilities unavailable")
	ErrForeignPort   = errors.New("port was not listed by the winmm transport")
)

// Struct representing MIDI device capabilities
type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

// Load the winmm.dll library and required functions
var (
	winmm                = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen       = winmm.NewProc("midiInOpen")
	procMidiInStart      = winmm.NewProc("midiInStart")
	procMidiInStop       = winmm.NewProc("midiInStop")
	procMidiInClose      = winmm.NewProc("midiInClose")
)

// windows.NewCallback slots are never freed, so every connection shares one
// callback and is found again through its instance id.
var (
	callbackOnce sync.Once
	callbackPtr  uintptr
	nextInstance atomic.Uintptr
	instances    sync.Map // uintptr -> *connection
)

// Transport lists and opens winmm MIDI input devices.
type Transport struct {
	logger contracts.Logger
}

// NewTransport checks that winmm.dll is loadable.
func NewTransport(options *contracts.ClientOptions) (contracts.Transport, error) {
	if err := winmm.Load(); err != nil {
		return nil, err
	}
	callbackOnce.Do(func() {
		callbackPtr = windows.NewCallback(midiInCallback)
	})
	return &Transport{logger: options.Logger}, nil
}

type devicePort struct {
	id   uint32
	name string
}

func (p devicePort) Name() (string, error) {
	if p.name == "" {
		return "", ErrUnnamedDevice
	}
	return p.name, nil
}

// Ports lists every MIDI input device known to winmm.
func (t *Transport) Ports() ([]contracts.Port, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	numDevices := uint32(r0)

	ports := make([]contracts.Port, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		port := devicePort{id: i}
		if r1 == 0 {
			port.name = windows.UTF16ToString(caps.szPname[:])
		} else {
			t.logger.Warn("Failed to get MIDI device capabilities", t.logger.Field().Int("deviceID", int(i)))
		}
		ports[i] = port
	}
	return ports, nil
}

// Connect opens the device and starts input.
func (t *Transport) Connect(port contracts.Port, handler contracts.MessageHandler) (contracts.Connection, error) {
	p, ok := port.(devicePort)
	if !ok {
		return nil, ErrForeignPort
	}

	c := &connection{
		logger:   t.logger,
		handler:  handler,
		instance: nextInstance.Add(1),
	}
	instances.Store(c.instance, c)

	r1, _, err := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&c.handle)),
		uintptr(p.id),
		callbackPtr,
		c.instance,
		uintptr(CALLBACK_FUNCTION|MIDI_IO_STATUS),
	)
	if r1 != 0 {
		instances.Delete(c.instance)
		return nil, fmt.Errorf("midiInOpen device %d: %v", p.id, err)
	}

	r1, _, err = procMidiInStart.Call(uintptr(c.handle))
	if r1 != 0 {
		procMidiInClose.Call(uintptr(c.handle))
		instances.Delete(c.instance)
		return nil, fmt.Errorf("midiInStart device %d: %v", p.id, err)
	}
	return c, nil
}

// Close is a no-op; winmm.dll stays loaded for the life of the process.
func (t *Transport) Close() error {
	return nil
}

type connection struct {
	logger   contracts.Logger
	handler  contracts.MessageHandler
	handle   HMIDIIN
	instance uintptr
	once     sync.Once
}

func (c *connection) Close() error {
	var err error
	c.once.Do(func() {
		if r1, _, e := procMidiInStop.Call(uintptr(c.handle)); r1 != 0 {
			err = fmt.Errorf("midiInStop: %v", e)
		}
		if r1, _, e := procMidiInClose.Call(uintptr(c.handle)); r1 != 0 && err == nil {
			err = fmt.Errorf("midiInClose: %v", e)
		}
		instances.Delete(c.instance)
	})
	return err
}

// midiInCallback processes incoming MIDI messages
func midiInCallback(hMidiIn, wMsg, dwInstance, dwParam1, dwParam2 uintptr) uintptr {
	v, ok := instances.Load(dwInstance)
	if !ok {
		return 0
	}
	c := v.(*connection)

	switch wMsg {
	case MIM_DATA:
		c.handler(unpackShortMessage(dwParam1))
	case MIM_OPEN, MIM_CLOSE, MIM_MOREDATA:
	case MIM_ERROR, MIM_LONGERROR:
		c.logger.Debug("MIDI input error", c.logger.Field().Uint64("msg", uint64(wMsg)))
	}
	return 0
}
