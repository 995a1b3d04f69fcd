package metadata_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"kithara/internal/metadata"
	"kithara/internal/services"
)

func writeXML(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

const soundbankDoc = `<?xml version="1.0" encoding="utf-8"?>
<SoundBanksInfo>
  <SoundBanks>
    <SoundBank Id="12345">
      <IncludedMemoryFiles>
        <File Id="101" Language="SFX">
          <ShortName>cmbt.rng.slinger.short.00.MSTR.wav</ShortName>
          <Path>SFX\cmbt_rng_slinger_101.wem</Path>
        </File>
        <File Id="102">
          <ShortName>mv.obj.arrowRattle.MSTR.09.wav</ShortName>
          <Path>SFX\mv_obj_arrowrattle_102.wem</Path>
        </File>
        <File Id="0">
          <ShortName>orphan.wav</ShortName>
          <Path>SFX\orphan.wem</Path>
        </File>
        <File Id="103">
          <Path>SFX\nameless.wem</Path>
        </File>
      </IncludedMemoryFiles>
    </SoundBank>
  </SoundBanks>
</SoundBanksInfo>`

func TestParseSoundbank(t *testing.T) {
	path := writeXML(t, "Audio_Animation.xml", soundbankDoc)

	files, err := metadata.ParseSoundbank(path)
	if err != nil {
		t.Fatalf("ParseSoundbank: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %+v", len(files), files)
	}

	first, ok := files[101]
	if !ok {
		t.Fatal("file 101 missing")
	}
	if first.ShortName != "cmbt.rng.slinger.short.00.MSTR.wav" {
		t.Errorf("short name: %q", first.ShortName)
	}
	if first.Path != `SFX\cmbt_rng_slinger_101.wem` {
		t.Errorf("path: %q", first.Path)
	}

	if _, ok := files[0]; ok {
		t.Error("zero-id entry should be dropped")
	}
	if _, ok := files[103]; ok {
		t.Error("entry without short name should be dropped")
	}
}

func TestParseSoundbankIgnoresForeignFileListings(t *testing.T) {
	// File elements outside IncludedMemoryFiles must not be picked up.
	path := writeXML(t, "Audio_2D.xml", `<SoundBanksInfo>
  <StreamedFiles>
    <File Id="900"><ShortName>mus.streamed.wav</ShortName></File>
  </StreamedFiles>
  <IncludedMemoryFiles>
    <File Id="1"><ShortName>ui.click.wav</ShortName><Path>a.wem</Path></File>
  </IncludedMemoryFiles>
</SoundBanksInfo>`)

	files, err := metadata.ParseSoundbank(path)
	if err != nil {
		t.Fatalf("ParseSoundbank: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected only the included file, got %+v", files)
	}
	if _, ok := files[900]; ok {
		t.Error("streamed entry leaked into included files")
	}
}

func TestParseSoundbankTolerantOfUnknownShape(t *testing.T) {
	path := writeXML(t, "Audio_3D.xml", `<SoundBanksInfo>
  <IncludedMemoryFiles>
    <File Id="5" Extra="x">
      <Unknown><Deep>ignored</Deep></Unknown>
      <ShortName>vcl.grunt.warrior.02.wav</ShortName>
      <Path>b.wem</Path>
      <AnotherUnknown/>
    </File>
    <File Id="notanumber">
      <ShortName>bad.wav</ShortName>
    </File>
  </IncludedMemoryFiles>
</SoundBanksInfo>`)

	files, err := metadata.ParseSoundbank(path)
	if err != nil {
		t.Fatalf("ParseSoundbank: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %+v", files)
	}
	if files[5].ShortName != "vcl.grunt.warrior.02.wav" {
		t.Errorf("short name: %q", files[5].ShortName)
	}
}

func TestParseSoundbankMissingFile(t *testing.T) {
	_, err := metadata.ParseSoundbank(filepath.Join(t.TempDir(), "nope.xml"))
	if !errors.Is(err, services.ErrIO) {
		t.Fatalf("expected io error, got %v", err)
	}
}

func TestParseStreamedFiles(t *testing.T) {
	path := writeXML(t, "SoundbanksInfo.xml", `<SoundBanksInfo>
  <StreamedFiles>
    <File Id="201" Language="SFX">
      <ShortName>Shope, Shope.wav</ShortName>
    </File>
    <File Id="202">
      <ShortName>Harvest Dance_C49E5CC0.wav</ShortName>
    </File>
    <File Id="0">
      <ShortName>dropped.wav</ShortName>
    </File>
  </StreamedFiles>
  <IncludedMemoryFiles>
    <File Id="999"><ShortName>embedded.wav</ShortName></File>
  </IncludedMemoryFiles>
</SoundBanksInfo>`)

	files, err := metadata.ParseStreamedFiles(path)
	if err != nil {
		t.Fatalf("ParseStreamedFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %+v", files)
	}
	if files[201].ShortName != "Shope, Shope.wav" {
		t.Errorf("short name: %q", files[201].ShortName)
	}
	if _, ok := files[999]; ok {
		t.Error("embedded entry leaked into streamed files")
	}
}

func TestParseEvents(t *testing.T) {
	path := writeXML(t, "Events.xml", `<SoundBanksInfo>
  <Events>
    <Event Id="301" Name="Play_cmbt_attack" DurationMin="0.5" DurationMax="1.25" DurationType="OneShot"/>
    <Event Id="302" Name="Play_ambience_forest" DurationType="Infinite"/>
    <Event Id="0" Name="dropped"/>
    <Event Id="303" Name=""/>
  </Events>
</SoundBanksInfo>`)

	events, err := metadata.ParseEvents(path)
	if err != nil {
		t.Fatalf("ParseEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %+v", events)
	}
	ev := events[301]
	if ev.Name != "Play_cmbt_attack" || ev.DurationMin != 0.5 || ev.DurationMax != 1.25 || ev.DurationType != "OneShot" {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestParseEventsMissingFileIsNotAnError(t *testing.T) {
	events, err := metadata.ParseEvents(filepath.Join(t.TempDir(), "Events.xml"))
	if err != nil {
		t.Fatalf("missing events document should not fail: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %+v", events)
	}
}
