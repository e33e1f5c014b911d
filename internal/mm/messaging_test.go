//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitRespectsThreshold(t *testing.T) {
	var b bytes.Buffer
	m := NewMessageMaker("TopicTweetsServer", "TTS", "0.0.0", MSGNOTE, true)
	m.Out = &b

	m.WARN("shown")
	m.TMI("hidden")
	m.MAND("always")

	out := b.String()
	assert.Contains(t, out, "[TTS] shown")
	assert.Contains(t, out, "[TTS] always")
	assert.NotContains(t, out, "hidden")
}

func TestBlackAndWhiteStripsTags(t *testing.T) {
	m := NewMessageMaker("TopicTweetsServer", "TTS", "0.0.0", MSGNOTE, true)
	assert.Equal(t, "[git: abc] bold", m.ColStyle("[C4git: abcC0] S1boldS0"))
}
