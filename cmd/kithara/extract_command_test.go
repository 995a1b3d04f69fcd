package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"kithara/internal/testsupport"
)

func writeTestSoundbank(t *testing.T, gameDir string, id uint32, shortName, payload string) {
	t.Helper()

	writeChunk := func(buf *bytes.Buffer, tag string, body []byte) {
		buf.WriteString(tag)
		binary.Write(buf, binary.LittleEndian, uint32(len(body)))
		buf.Write(body)
	}

	var index bytes.Buffer
	binary.Write(&index, binary.LittleEndian, id)
	binary.Write(&index, binary.LittleEndian, uint32(0))
	binary.Write(&index, binary.LittleEndian, uint32(len(payload)))

	var bnk bytes.Buffer
	writeChunk(&bnk, "BKHD", make([]byte, 16))
	writeChunk(&bnk, "DIDX", index.Bytes())
	writeChunk(&bnk, "DATA", []byte(payload))
	testsupport.WriteFile(t, filepath.Join(gameDir, "Audio_Animation.bnk"), bnk.Bytes())

	doc := fmt.Sprintf(`<SoundBanksInfo><SoundBanks><SoundBank><IncludedMemoryFiles>
<File Id="%d"><ShortName>%s</ShortName><Path>SFX\%d.wem</Path></File>
</IncludedMemoryFiles></SoundBank></SoundBanks></SoundBanksInfo>
`, id, shortName, id)
	testsupport.WriteFile(t, filepath.Join(gameDir, "Audio_Animation.xml"), []byte(doc))
}

func TestExtractCommandRunsToCompletion(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedBinaries())
	writeTestSoundbank(t, env.cfg.Paths.GameDir, 101, "ui.click.confirm.wav", "clickaudio")

	out, err := runCLI(t, []string{"extract"}, env.configPath)
	if err != nil {
		t.Fatalf("extract: %v\n%s", err, out)
	}
	requireContains(t, out, "Extraction complete")

	converted := filepath.Join(env.cfg.SoundsDir(), "ui", "101_ui.click.confirm.wav.ogg")
	if _, statErr := os.Stat(converted); statErr != nil {
		t.Fatalf("expected converted audio at %s: %v", converted, statErr)
	}

	listing, err := runCLI(t, []string{"search", "click"}, env.configPath)
	if err != nil {
		t.Fatalf("search after extract: %v", err)
	}
	requireContains(t, listing, "Ui Click Confirm")
}

func TestExtractCommandFailsWithoutSoundbanks(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedBinaries())

	out, err := runCLI(t, []string{"extract"}, env.configPath)
	if err == nil {
		t.Fatalf("expected extraction failure, got:\n%s", out)
	}
	requireContains(t, err.Error(), "no audio entries")
}
