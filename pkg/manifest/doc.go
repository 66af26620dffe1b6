// Package manifest loads localized route declarations from YAML or JSON files
// and compiles them into locale matcher sets.
//
// A manifest maps route names to locale patterns. Locale order is kept as
// written, since it decides which locale Exec tries first:
//
//	about:
//	  en: /about?rootLocale
//	  fr: /:locale/a-propos
//	product:
//	  en: /products/{id:int}?rootLocale
//	  fr: /:locale/produits/{id:int}
//
// Load walks an fs.FS and reads every .yaml, .yml and .json file:
//
//	m, err := manifest.Load(os.DirFS("routes"))
//	sets, err := m.CompileAll(factory)
//	sets["about"].Format(i18nurl.Values{"locale": "fr"})
package manifest
