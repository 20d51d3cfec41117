/*
Package dspgraph allows to compose audio units into a directed acyclic
graph and render audio by pulling buffers through it.

Concept

A graph consists of nodes and connections. Every node wraps a Unit - a
value which produces or transforms one buffer of audio per render call.
A connection declares that one node's output feeds another node's
input. One node is designated master: the graph's rendered output is
the master's output.

    osc A ──┐
    osc B ──┼── mixer (master) ── rendered output
    osc C ──┘

Rendering

Rendering is pull-based and single-threaded: once per buffer period the
transport calls Render, the graph walks the nodes feeding the master in
dependency order, sums every node's inputs in connection order and
invokes its unit. The processing order is cached and recomputed only
after the topology changed.

Mutation

The graph may be mutated while another goroutine renders it. Plain
method calls briefly lock the graph; for strict real-time use the
Pusher delivers batched mutations which the render call applies at the
buffer boundary, so the render goroutine never waits for the control
side.

Components

Units live in their own packages: oscillator and wav.Sampler generate
signal, gain, mixer and vst2 transform it. Transports pull rendered
audio out of the graph: portaudio plays it on a device, wav.Sink and
mp3.Sink write it to files.
*/
package dspgraph
