package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleLocales = `
default: tr
supported: [tr, en]
cultures:
  tr: tr_TR
  en: en_US
build:
  tr:
    canonical: "https://example.com/"
    langAttr: tr
    ogLocale: tr_TR
    altLocale: [en_US]
  en:
    canonical: "https://example.com/en/"
    langAttr: en
    ogLocale: en_US
    altLocale: [tr_TR]
translations:
  tr:
    site:
      title: "Örnek Site"
    menu:
      about: "Hakkında"
  en:
    site:
      title: "Sample Site"
`

func writeLocales(t *testing.T) *Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "i18n.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleLocales), 0o644))
	svc, err := Load(path)
	require.NoError(t, err)
	return svc
}

func TestLoad_MissingFile_YieldsSingleLocaleService(t *testing.T) {
	svc, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, "en", svc.Default())
	require.Equal(t, []string{"en"}, svc.Supported())
}

func TestService_FlattensNestedTranslations(t *testing.T) {
	svc := writeLocales(t)
	require.Equal(t, "Örnek Site", svc.T("tr", "site.title", "x"))
	require.Equal(t, "Hakkında", svc.T("tr", "menu.about", "about"))
	require.Equal(t, "fallback", svc.T("en", "menu.about", "fallback"))
	require.Equal(t, "fallback", svc.T("de", "site.title", "fallback"))
}

func TestService_CultureFallsBackToCode(t *testing.T) {
	svc := writeLocales(t)
	require.Equal(t, "tr_TR", svc.Culture("tr"))
	require.Equal(t, "de", svc.Culture("de"))
}

func TestService_HomePath(t *testing.T) {
	svc := writeLocales(t)
	require.Equal(t, "/", svc.HomePath("tr"))
	require.Equal(t, "/en/", svc.HomePath("en"))
	require.Equal(t, "/", svc.HomePath(""))
}

func TestService_CompareUsesLocaleCollation(t *testing.T) {
	svc := writeLocales(t)
	// Turkish collation orders ç between c and d.
	require.Negative(t, svc.Compare("tr", "çay", "day"))
	require.Positive(t, svc.Compare("tr", "çay", "cay"))
}

func TestService_BuildConfigLookup(t *testing.T) {
	svc := writeLocales(t)
	bc, ok := svc.Build("en")
	require.True(t, ok)
	require.Equal(t, "https://example.com/en/", bc.Canonical)

	_, ok = svc.Build("de")
	require.False(t, ok)
}
