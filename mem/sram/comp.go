// Package sram models a synchronous, single-port, word-addressable memory
// block.
//
// Inputs are sampled on the rising edge of the clock. A write commits on the
// edge, and the read port presents the addressed word on DataOut from that
// edge on, so a value requested in one cycle can be observed in the next.
package sram

import (
	log "github.com/sirupsen/logrus"

	"github.com/sarchlab/memverif/mem"
	"github.com/sarchlab/memverif/sim"
)

// Ports are the signals between the memory block and whoever drives it.
type Ports struct {
	WriteEnable bool
	Address     uint64
	DataIn      uint64
	DataOut     uint64
}

// A ResetLine tells if reset is asserted.
type ResetLine interface {
	ResetAsserted() bool
}

// Comp is a synchronous memory block that evaluates on rising clock edges.
type Comp struct {
	name string

	Spec    Spec
	Ports   *Ports
	Storage *mem.Storage

	reset ResetLine
}

// Name returns the name of the memory block.
func (c *Comp) Name() string {
	return c.name
}

// Drive sets the inputs that the next rising edge will sample.
func (c *Comp) Drive(writeEnable bool, address, data uint64) error {
	if err := c.Spec.CheckAddress(address); err != nil {
		return err
	}

	if err := c.Spec.CheckData(data); err != nil {
		return err
	}

	c.Ports.WriteEnable = writeEnable
	c.Ports.Address = address
	c.Ports.DataIn = data

	return nil
}

// Write stores a word immediately, without waiting for a clock edge.
func (c *Comp) Write(address, data uint64) error {
	if err := c.Spec.CheckAddress(address); err != nil {
		return err
	}

	if err := c.Spec.CheckData(data); err != nil {
		return err
	}

	return c.Storage.Write(address, data)
}

// Read returns a stored word immediately, without waiting for a clock edge.
func (c *Comp) Read(address uint64) (uint64, error) {
	if err := c.Spec.CheckAddress(address); err != nil {
		return 0, err
	}

	return c.Storage.Read(address)
}

// NotifyEdge evaluates the memory on rising edges.
func (c *Comp) NotifyEdge(edge sim.Edge, now sim.VTime) {
	if edge != sim.EdgeRising {
		return
	}

	if c.reset != nil && c.reset.ResetAsserted() {
		c.Storage.Reset()
		c.Ports.DataOut = 0

		return
	}

	addr := c.Ports.Address

	old, err := c.Read(addr)
	if err != nil {
		log.Panicf("%s: undriven address at %d: %v", c.name, now, err)
	}

	if !c.Ports.WriteEnable {
		c.Ports.DataOut = old
		return
	}

	err = c.Write(addr, c.Ports.DataIn)
	if err != nil {
		log.Panicf("%s: undriven data at %d: %v", c.name, now, err)
	}

	if c.Spec.ReadDuringWrite == WriteFirst {
		c.Ports.DataOut = c.Ports.DataIn
		return
	}

	c.Ports.DataOut = old
}
