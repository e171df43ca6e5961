package guide

// Built-in guide templates. The wording teaches the model the three save
// forms and the ground rules for what is worth persisting.
var defaults = map[string]string{
	"en": `You can store memories by adding one command line to your reply:

• JSON (preferred)
  save: {"memory":"<content>","keywords":"kw1,kw2","always":false}

• Key–Value (fallback)
  save: memory=<text>, keywords=kw1,kw2, always=true

• Short form
  save: (short memory text)

Rules:
- Save only stable, helpful info (preferences, recurring goals, constraints).
- No sensitive data without consent.
- Keep it short & precise (≤ 1–5 sentences) per memory.
- keywords: 1–5 focused triggers; use always=true only if broadly useful.

Good examples:
save: {"memory":"User wants concise answers (≤5 sentences).","keywords":"concise,short","always":true}
save: {"memory":"Project=Helios; Stack=Next.js+Supabase.","keywords":"helios,project"}
save: memory=No emojis, keywords=emoji, always=true`,

	"de": `Du kannst Erinnerungen speichern, indem du eine einzelne Befehlszeile in deine Antwort einfügst:

• JSON (bevorzugt)
  save: {"memory":"<Inhalt>","keywords":"kw1,kw2","always":false}

• Key–Value (Fallback)
  save: memory=<text>, keywords=kw1,kw2, always=true

• Kurzform
  save: (kurzer Erinnerungstext)

Regeln:
- Speichere nur stabile, hilfreiche Informationen (Vorlieben, wiederkehrende Ziele, Randbedingungen).
- Keine sensiblen Daten ohne Zustimmung.
- Kurz & präzise (≤ 1–5 Sätze) je Memory.
- keywords: 1–5 präzise Triggerwörter, always=true nur wenn global sinnvoll.

Gute Beispiele:
save: {"memory":"User wünscht kurze Antworten (≤5 Sätze).","keywords":"kurz,prägnant","always":true}
save: {"memory":"Projekt=Helios; Stack=Next.js+Supabase.","keywords":"helios,projekt"}
save: memory=Keine Emojis verwenden, keywords=emoji, always=true`,

	"es": `Puedes guardar memorias añadiendo una sola línea de comando a tu respuesta:

• JSON (preferido)
  save: {"memory":"<contenido>","keywords":"kw1,kw2","always":false}

• Clave–Valor (alternativa)
  save: memory=<texto>, keywords=kw1,kw2, always=true

• Forma corta
  save: (texto corto de memoria)

Reglas:
- Guarda solo información estable y útil (preferencias, metas recurrentes, restricciones).
- No guardes datos sensibles sin consentimiento.
- Manténlo breve y preciso (≤ 1–5 frases) por memoria.
- keywords: 1–5 disparadores precisos; usa always=true solo si es ampliamente útil.

Buenos ejemplos:
save: {"memory":"El usuario quiere respuestas concisas (≤5 frases).","keywords":"conciso,corto","always":true}
save: {"memory":"Proyecto=Helios; Stack=Next.js+Supabase.","keywords":"helios,proyecto"}
save: memory=Sin emojis, keywords=emoji, always=true`,

	"fr": `Vous pouvez enregistrer des mémoires en ajoutant une seule ligne de commande à votre réponse :

• JSON (recommandé)
  save: {"memory":"<contenu>","keywords":"kw1,kw2","always":false}

• Clé–Valeur (solution de repli)
  save: memory=<texte>, keywords=kw1,kw2, always=true

• Forme courte
  save: (texte court de mémoire)

Règles :
- N'enregistrez que des informations stables et utiles (préférences, objectifs récurrents, contraintes).
- Pas de données sensibles sans consentement.
- Gardez le tout bref et précis (≤ 1–5 phrases) par mémoire.
- keywords : 1 à 5 déclencheurs précis ; utilisez always=true uniquement si c'est largement utile.

Bons exemples :
save: {"memory":"L'utilisateur souhaite des réponses concises (≤5 phrases).","keywords":"concis,court","always":true}
save: {"memory":"Projet=Helios; Stack=Next.js+Supabase.","keywords":"helios,projet"}
save: memory=Pas d'emojis, keywords=emoji, always=true`,

	"pt": `Você pode armazenar memórias adicionando uma única linha de comando à sua resposta:

• JSON (preferido)
  save: {"memory":"<conteúdo>","keywords":"kw1,kw2","always":false}

• Chave–Valor (alternativa)
  save: memory=<texto>, keywords=kw1,kw2, always=true

• Forma curta
  save: (texto curto da memória)

Regras:
- Salve apenas informações estáveis e úteis (preferências, metas recorrentes, restrições).
- Não salve dados sensíveis sem consentimento.
- Mantenha curto e preciso (≤ 1–5 frases) por memória.
- keywords: 1–5 gatilhos precisos; use always=true apenas se for amplamente útil.

Bons exemplos:
save: {"memory":"Usuário deseja respostas concisas (≤5 frases).","keywords":"conciso,curto","always":true}
save: {"memory":"Projeto=Helios; Stack=Next.js+Supabase.","keywords":"helios,projeto"}
save: memory=Sem emojis, keywords=emoji, always=true`,

	"it": `Puoi salvare le memorie aggiungendo una singola riga di comando alla tua risposta:

• JSON (preferito)
  save: {"memory":"<contenuto>","keywords":"kw1,kw2","always":false}

• Chiave–Valore (alternativa)
  save: memory=<testo>, keywords=kw1,kw2, always=true

• Forma breve
  save: (breve testo della memoria)

Regole:
- Salva solo informazioni stabili e utili (preferenze, obiettivi ricorrenti, vincoli).
- Non salvare dati sensibili senza consenso.
- Mantieni il testo breve e preciso (≤ 1–5 frasi) per ogni memoria.
- keywords: 1–5 parole chiave mirate; usa always=true solo se ampiamente utile.

Esempi validi:
save: {"memory":"L'utente desidera risposte concise (≤5 frasi).","keywords":"conciso,breve","always":true}
save: {"memory":"Progetto=Helios; Stack=Next.js+Supabase.","keywords":"helios,progetto"}
save: memory=Nessuna emoji, keywords=emoji, always=true`,

	"pl": `Możesz zapisywać wspomnienia, dodając jedną linię polecenia do swojej odpowiedzi:

• JSON (preferowane)
  save: {"memory":"<treść>","keywords":"kw1,kw2","always":false}

• Klucz–Wartość (alternatywa)
  save: memory=<tekst>, keywords=kw1,kw2, always=true

• Krótka forma
  save: (krótki tekst pamięci)

Zasady:
- Zapisuj tylko stabilne i przydatne informacje (preferencje, powtarzające się cele, ograniczenia).
- Nie zapisuj danych wrażliwych bez zgody.
- Zachowaj zwięzłość i precyzję (≤ 1–5 zdań) na jedną pamięć.
- keywords: 1–5 dokładnych słów kluczowych; always=true używaj tylko, jeśli jest to szeroko przydatne.

Dobre przykłady:
save: {"memory":"Użytkownik chce zwięzłych odpowiedzi (≤5 zdań).","keywords":"zwięzłe,krótkie","always":true}
save: {"memory":"Projekt=Helios; Stack=Next.js+Supabase.","keywords":"helios,projekt"}
save: memory=Bez emotikonów, keywords=emoji, always=true`,

	"cs": `Můžete ukládat vzpomínky přidáním jediného příkazového řádku do své odpovědi:

• JSON (preferované)
  save: {"memory":"<obsah>","keywords":"kw1,kw2","always":false}

• Klíč–Hodnota (alternativa)
  save: memory=<text>, keywords=kw1,kw2, always=true

• Krátká forma
  save: (krátký text paměti)

Pravidla:
- Ukládejte pouze stabilní a užitečné informace (preference, opakující se cíle, omezení).
- Neukládejte citlivá data bez souhlasu.
- Držte to krátké a přesné (≤ 1–5 vět) na jednu paměť.
- keywords: 1–5 přesných spouštěčů; always=true použijte jen, pokud je to obecně užitečné.

Dobré příklady:
save: {"memory":"Uživatel chce stručné odpovědi (≤5 vět).","keywords":"stručné,krátké","always":true}
save: {"memory":"Projekt=Helios; Stack=Next.js+Supabase.","keywords":"helios,projekt"}
save: memory=Bez emotikonů, keywords=emoji, always=true`,
}
